package discord

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the gateway session that serves /battle and /perm.
type Bot struct {
	Session *discordgo.Session
	Config  *Config
}

func New(cfg *Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	// Slash commands and button presses arrive as interactions; guild
	// events are enough.
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		Session: session,
		Config:  cfg,
	}
	session.AddHandler(b.onReady)
	return b, nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	scope := "all guilds"
	if b.Config.GuildID != "" {
		scope = "guild " + b.Config.GuildID
	}
	log.Printf("Logged in as %s. Serving card battles in %s (%d guilds joined)", r.User.Username, scope, len(r.Guilds))
}

// OwnerID returns the user who bypasses permission checks: the application
// owner, or the team owner when a team holds the application.
func (b *Bot) OwnerID() (string, error) {
	app, err := b.Session.Application("@me")
	if err != nil {
		return "", fmt.Errorf("fetch application info: %w", err)
	}
	id := ownerFromApplication(app)
	if id == "" {
		return "", errors.New("application has no owner")
	}
	return id, nil
}

func ownerFromApplication(app *discordgo.Application) string {
	switch {
	case app == nil:
		return ""
	case app.Team != nil && app.Team.OwnerID != "":
		return app.Team.OwnerID
	case app.Owner != nil:
		return app.Owner.ID
	}
	return ""
}

func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

func (b *Bot) Stop() error {
	return b.Session.Close()
}
