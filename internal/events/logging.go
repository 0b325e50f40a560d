package events

import (
	"fmt"
	"log"
	"sync"
	"time"

	"cardbattler/internal/battle"
	"cardbattler/internal/battlelog"
	"cardbattler/internal/discord"

	"github.com/bwmarrin/discordgo"
)

// Logger reports finished battles to the configured log channel.
type Logger struct {
	Session      *discordgo.Session
	LogChannelID string

	send func(channelID string, embed *discordgo.MessageEmbed) error
	wg   sync.WaitGroup
}

func NewLogger(s *discordgo.Session, cfg *discord.Config) *Logger {
	l := &Logger{
		Session:      s,
		LogChannelID: cfg.LogChannelID,
	}
	l.send = l.sendEmbed
	return l
}

func (l *Logger) sendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := l.Session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// Observer returns a battle observer for games played by username. The
// result is posted in the background so the interaction that ended the
// game can be answered first.
func (l *Logger) Observer(username string) battle.Observer {
	return battle.ObserverFunc(func(ev battle.Event) {
		ended, ok := ev.Payload.(battle.GameEnded)
		if !ok {
			return
		}
		log.Printf("[EVENT] Battle Finished: %s | %d-%d | %s", username, ended.PlayerScore, ended.OpponentScore, ended.Winner)

		embed := GameEndedEmbed(username, ended, time.Now())
		send := l.send
		if send == nil {
			send = l.sendEmbed
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if err := send(l.LogChannelID, embed); err != nil {
				log.Printf("[EVENT ERROR] Could not post battle result for %s: %v", username, err)
			}
		}()
	})
}

// Wait blocks until every pending result has been posted.
func (l *Logger) Wait() {
	l.wg.Wait()
}

// GameEndedEmbed builds the log channel message for a finished game.
func GameEndedEmbed(username string, ended battle.GameEnded, at time.Time) *discordgo.MessageEmbed {
	color := 0xffcc00 // tie
	switch ended.Winner {
	case battle.PlayerWins:
		color = 0x00ff00
	case battle.OpponentWins:
		color = 0xff0000
	}
	return &discordgo.MessageEmbed{
		Title:       "Battle Finished",
		Description: fmt.Sprintf("%s vs AI: %s", username, battlelog.GameText(ended.Winner)),
		Color:       color,
		Timestamp:   at.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Score", Value: fmt.Sprintf("%d - %d", ended.PlayerScore, ended.OpponentScore), Inline: true},
		},
	}
}
