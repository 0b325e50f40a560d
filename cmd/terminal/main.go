package main

import (
	"flag"
	"log/slog"
	"os"

	"cardbattler/internal/battle"
	"cardbattler/internal/battlelog"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const resetOption = "↺ Reset game"

func main() {
	seed := flag.Uint64("seed", 0, "seed for a reproducible game (0 picks a random seed)")
	catalogPath := flag.String("catalog", "", "JSON card catalog (defaults to the built-in animals)")
	debug := flag.Bool("debug", false, "log engine events")
	flag.Parse()

	if *debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Card ", pterm.FgLightCyan.ToStyle()),
		putils.LettersFromStringWithStyle("Battle", pterm.FgRed.ToStyle()),
	).Render()

	catalog := battle.DefaultCatalog()
	if *catalogPath != "" {
		var err error
		catalog, err = battle.LoadCatalog(*catalogPath)
		if err != nil {
			logger.Error("failed to load catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
		pterm.Info.Printfln("Loaded %d cards from %s", len(catalog), *catalogPath)
	}

	narration := &battlelog.Log{}
	opts := []battle.Option{battle.WithLogger(logger), battle.WithObserver(narration)}
	if *seed != 0 {
		opts = append(opts, battle.WithRand(battle.NewRand(*seed)))
		pterm.Info.Printfln("Seed: %d", *seed)
	}

	session, err := battle.NewSession(catalog, opts...)
	if err != nil {
		logger.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	for {
		if _, err := session.Start(); err != nil {
			logger.Error("failed to start game", "error", err)
			os.Exit(1)
		}
		if !playGame(session, narration) {
			break
		}
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Play again?").WithDefaultValue(true).Show()
		if !again {
			break
		}
	}
	pterm.Info.Println("Thanks for playing!")
}

// playGame runs one game to completion. It returns false when the player
// resets and declines a new deal.
func playGame(session *battle.Session, narration *battlelog.Log) bool {
	var last *battle.RoundResolved
	for {
		st := session.State()
		printState(st, last, narration.Tail(6))
		if st.Status == battle.StatusFinished {
			return true
		}

		labels, index := handOptions(st.PlayerHand)
		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Choose a card to play").
			WithOptions(append(labels, resetOption)).
			WithMaxHeight(len(labels) + 1).
			Show()

		if choice == resetOption {
			session.Reset()
			pterm.Warning.Println("Game reset.")
			deal, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Deal a new game?").WithDefaultValue(true).Show()
			if !deal {
				return false
			}
			if _, err := session.Start(); err != nil {
				pterm.Error.Printfln("Could not deal: %v", err)
				return false
			}
			last = nil
			continue
		}

		evs, err := session.PlayCard(index[choice])
		if err != nil {
			pterm.Error.Printfln("Invalid move: %v", err)
			continue
		}
		for _, ev := range evs {
			if r, ok := ev.Payload.(battle.RoundResolved); ok {
				last = &r
			}
		}
	}
}
