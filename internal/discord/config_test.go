package discord

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE", "")
	os.Unsetenv("DATABASE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DiscordToken != "token" {
		t.Fatalf("token = %q", cfg.DiscordToken)
	}
	if cfg.Database != "permissions.db" {
		t.Fatalf("database = %q, want permissions.db", cfg.Database)
	}
	if cfg.BattleSeed != 0 {
		t.Fatalf("seed = %d, want 0", cfg.BattleSeed)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadBadSeed(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("BATTLE_SEED", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestCatalog(t *testing.T) {
	cfg := &Config{}
	cards, err := cfg.Catalog()
	if err != nil || len(cards) != 6 {
		t.Fatalf("default catalog = %d cards, err %v", len(cards), err)
	}

	path := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(`{"card_list":[{"name":"Owl","symbol":"🦉","attack":3,"defense":4}]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg.CatalogPath = path
	cards, err = cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Owl" {
		t.Fatalf("cards = %v", cards)
	}
}
