package discord

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"cardbattler/internal/battle"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	GuildID      string `env:"GUILD_ID"`
	LogChannelID string `env:"LOG_CHANNEL_ID"`
	Database     string `env:"DATABASE" envDefault:"permissions.db"`
	// CatalogPath points at a JSON card list. Empty means the built-in catalog.
	CatalogPath string `env:"CATALOG_PATH"`
	// BattleSeed makes games reproducible when non-zero.
	BattleSeed uint64 `env:"BATTLE_SEED"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Catalog returns the configured card catalog.
func (c *Config) Catalog() ([]battle.Card, error) {
	if c.CatalogPath == "" {
		return battle.DefaultCatalog(), nil
	}
	return battle.LoadCatalog(c.CatalogPath)
}
