package commands

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"cardbattler/internal/battle"
	"cardbattler/internal/battlelog"
	"cardbattler/internal/events"

	"github.com/bwmarrin/discordgo"
)

var BattleCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "battle",
		Description: "Play a card battle against the AI",
	},
}

const (
	battlePlayPrefix = "game_battle_play:"
	battleResetID    = "game_battle_reset"
	battleNewID      = "game_battle_new"

	// MaxHandButtons is the largest hand the battle message can show: four
	// rows of five buttons, leaving the last row for the controls.
	MaxHandButtons = 20
	logLines       = 8
)

type battleGame struct {
	MessageID string
	ChannelID string
	OwnerID   string
	OwnerName string
	Session   *battle.Session
	Log       *battlelog.Log

	// mu serializes button presses on one game; Last is guarded by it.
	mu   sync.Mutex
	Last *battle.RoundResolved
}

var (
	// BattleCatalog is the card list new games are dealt from.
	BattleCatalog = battle.DefaultCatalog()
	// BattleLogger, when set, reports finished games to the log channel.
	BattleLogger *events.Logger

	activeBattles  = make(map[string]*battleGame) // message ID -> game
	battlesByOwner = make(map[string]string)      // user ID -> message ID
	battlesMutex   sync.Mutex
	battleSeeds    *rand.Rand
)

// SetBattleSeed makes every following game reproducible. Zero restores
// crypto-seeded games.
func SetBattleSeed(seed uint64) {
	battlesMutex.Lock()
	defer battlesMutex.Unlock()
	if seed == 0 {
		battleSeeds = nil
		return
	}
	battleSeeds = battle.NewRand(seed)
}

func nextBattleSeed() (uint64, bool) {
	battlesMutex.Lock()
	defer battlesMutex.Unlock()
	if battleSeeds == nil {
		return 0, false
	}
	return battleSeeds.Uint64(), true
}

func newBattleGame(ownerID, ownerName string) (*battleGame, error) {
	g := &battleGame{OwnerID: ownerID, OwnerName: ownerName, Log: &battlelog.Log{}}
	opts := []battle.Option{battle.WithObserver(g.Log)}
	if BattleLogger != nil && BattleLogger.LogChannelID != "" {
		opts = append(opts, battle.WithObserver(BattleLogger.Observer(ownerName)))
	}
	if seed, ok := nextBattleSeed(); ok {
		opts = append(opts, battle.WithRand(battle.NewRand(seed)))
	}
	sess, err := battle.NewSession(BattleCatalog, opts...)
	if err != nil {
		return nil, err
	}
	g.Session = sess
	return g, nil
}

func HandleBattleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	user := interactionUser(i)
	g, err := newBattleGame(user.ID, user.Username)
	if err != nil {
		log.Printf("[BATTLE ERROR] User %s: %v", user.ID, err)
		respondError(s, i, "Could not set up the card battle.")
		return
	}
	ev, err := g.Session.Start()
	if err != nil {
		log.Printf("[BATTLE ERROR] User %s: %v", user.ID, err)
		respondError(s, i, "Could not deal the cards.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{battleEmbed(g)},
			Components: battleComponents(g.Session.State()),
		},
	})
	if err != nil {
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return
	}
	g.MessageID = msg.ID
	g.ChannelID = msg.ChannelID

	battlesMutex.Lock()
	// One battle per user: an older message stops responding.
	if old, ok := battlesByOwner[user.ID]; ok {
		delete(activeBattles, old)
	}
	activeBattles[msg.ID] = g
	battlesByOwner[user.ID] = msg.ID
	battlesMutex.Unlock()

	log.Printf("[BATTLE START] %s | Rounds: %d | Message: %s", user.Username, ev.MaxRounds, msg.ID)
}

type battleAction struct {
	kind  string // "play", "reset" or "new"
	round int    // rounds played when the button was rendered
	index int
}

// playCustomID encodes a card button as game_battle_play:<round>:<index>.
func playCustomID(round, index int) string {
	return fmt.Sprintf("%s%d:%d", battlePlayPrefix, round, index)
}

func parseBattleAction(customID string) (battleAction, error) {
	switch {
	case customID == battleResetID:
		return battleAction{kind: "reset"}, nil
	case customID == battleNewID:
		return battleAction{kind: "new"}, nil
	case strings.HasPrefix(customID, battlePlayPrefix):
		roundStr, idxStr, ok := strings.Cut(strings.TrimPrefix(customID, battlePlayPrefix), ":")
		if !ok {
			return battleAction{}, fmt.Errorf("missing round in %q", customID)
		}
		round, err := strconv.Atoi(roundStr)
		if err != nil {
			return battleAction{}, fmt.Errorf("bad round in %q: %w", customID, err)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return battleAction{}, fmt.Errorf("bad card index in %q: %w", customID, err)
		}
		return battleAction{kind: "play", round: round, index: idx}, nil
	}
	return battleAction{}, fmt.Errorf("unknown battle component %q", customID)
}

func HandleBattleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, err := parseBattleAction(i.MessageComponentData().CustomID)
	if err != nil {
		log.Printf("[BATTLE ERROR] %v", err)
		return
	}

	battlesMutex.Lock()
	g, exists := activeBattles[i.Message.ID]
	battlesMutex.Unlock()
	if !exists {
		respondError(s, i, "Battle not found. Start a new one with /battle.")
		return
	}

	user := interactionUser(i)
	if user.ID != g.OwnerID {
		respondError(s, i, "This isn't your battle! Start your own with /battle.")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := applyBattleAction(g, action); err != nil {
		if errors.Is(err, battle.ErrInvalidMove) {
			respondError(s, i, "That card can't be played right now.")
			return
		}
		log.Printf("[BATTLE ERROR] %s | %v", user.Username, err)
		respondError(s, i, "Something went wrong with this battle.")
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{battleEmbed(g)},
			Components: battleComponents(g.Session.State()),
		},
	})
}

// applyBattleAction runs one button press against the game. The caller
// holds g.mu.
func applyBattleAction(g *battleGame, action battleAction) error {
	switch action.kind {
	case "play":
		// A button from an older render points at a hand that has since shifted.
		if played := g.Session.State().RoundsPlayed; action.round != played {
			return fmt.Errorf("%w: button from round %d, game is at round %d", battle.ErrInvalidMove, action.round, played)
		}
		evs, err := g.Session.PlayCard(action.index)
		if err != nil {
			return err
		}
		for _, ev := range evs {
			switch p := ev.Payload.(type) {
			case battle.RoundResolved:
				g.Last = &p
				log.Printf("[BATTLE ROUND] %s | Round %d | %s vs %s | %s", g.OwnerName, p.RoundsPlayed, p.PlayerCard.Name, p.OpponentCard.Name, p.Result)
			case battle.GameEnded:
				log.Printf("[BATTLE FINISH] %s | %d-%d | %s", g.OwnerName, p.PlayerScore, p.OpponentScore, p.Winner)
			}
		}
	case "reset":
		g.Session.Reset()
		g.Last = nil
	case "new":
		if _, err := g.Session.Start(); err != nil {
			return err
		}
		g.Last = nil
	default:
		return fmt.Errorf("unknown battle action %q", action.kind)
	}
	return nil
}

func battleEmbed(g *battleGame) *discordgo.MessageEmbed {
	st := g.Session.State()

	desc := strings.Join(g.Log.Tail(logLines), "\n")
	if desc == "" {
		desc = "Press **New Game** to deal the cards."
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Card Battle: %s vs AI", g.OwnerName),
		Description: desc,
		Color:       battleColor(st),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Score", Value: fmt.Sprintf("You %d - %d AI", st.PlayerScore, st.OpponentScore), Inline: true},
			{Name: "Round", Value: fmt.Sprintf("%d / %d", st.RoundsPlayed, st.MaxRounds), Inline: true},
		},
	}

	if g.Last != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Your Card", Value: playedCard(g.Last.PlayerCard, g.Last.PlayerCrit, g.Last.Result == battle.PlayerWins), Inline: true},
			&discordgo.MessageEmbedField{Name: "AI Card", Value: playedCard(g.Last.OpponentCard, g.Last.OpponentCrit, g.Last.Result == battle.OpponentWins), Inline: true},
			&discordgo.MessageEmbedField{Name: "Damage", Value: fmt.Sprintf("%d vs %d", g.Last.PlayerDamage, g.Last.OpponentDamage), Inline: true},
		)
	}
	return embed
}

func battleColor(st battle.State) int {
	if st.Status != battle.StatusFinished {
		return 0x5865F2
	}
	switch st.Winner {
	case battle.PlayerWins:
		return 0x00FF00
	case battle.OpponentWins:
		return 0xFF0000
	default:
		return 0xFFCC00
	}
}

func playedCard(c battle.Card, crit, winner bool) string {
	s := fmt.Sprintf("%s **%s**\nATK %d · DEF %d", c.Symbol, c.Name, c.Attack, c.Defense)
	if crit {
		s += "\n💥 Critical!"
	}
	if winner {
		s += "\n🏆 Winner"
	}
	return s
}

func battleComponents(st battle.State) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent

	if st.Status == battle.StatusInProgress {
		var row []discordgo.MessageComponent
		for idx, c := range st.PlayerHand {
			if idx == MaxHandButtons {
				break
			}
			row = append(row, discordgo.Button{
				Label:    fmt.Sprintf("%s %s %d/%d", c.Symbol, c.Name, c.Attack, c.Defense),
				Style:    discordgo.PrimaryButton,
				CustomID: playCustomID(st.RoundsPlayed, idx),
			})
			if len(row) == 5 {
				rows = append(rows, discordgo.ActionsRow{Components: row})
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
		}
	}

	var controls []discordgo.MessageComponent
	if st.Status != battle.StatusInProgress {
		controls = append(controls, discordgo.Button{Label: "New Game", Style: discordgo.SuccessButton, CustomID: battleNewID})
	}
	if st.Status != battle.StatusNotStarted {
		controls = append(controls, discordgo.Button{Label: "Reset", Style: discordgo.DangerButton, CustomID: battleResetID})
	}
	return append(rows, discordgo.ActionsRow{Components: controls})
}
