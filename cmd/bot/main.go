package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"cardbattler/internal/commands"
	"cardbattler/internal/database"
	"cardbattler/internal/discord"
	"cardbattler/internal/events"
)

func main() {
	// 1. Load Configuration
	cfg, err := discord.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// 2. Load Card Catalog
	catalog, err := cfg.Catalog()
	if err != nil {
		log.Fatalf("Error loading card catalog: %v", err)
	}
	if len(catalog) > commands.MaxHandButtons {
		log.Fatalf("Card catalog has %d cards; at most %d fit on a battle message", len(catalog), commands.MaxHandButtons)
	}
	commands.BattleCatalog = catalog
	if cfg.CatalogPath != "" {
		log.Printf("Loaded %d cards from %s", len(catalog), cfg.CatalogPath)
	}
	if cfg.BattleSeed != 0 {
		commands.SetBattleSeed(cfg.BattleSeed)
		log.Printf("Battles seeded with %d", cfg.BattleSeed)
	}

	// 3. Initialize Bot
	bot, err := discord.New(cfg)
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	// 4. Initialize Database
	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer db.Close()

	// Inject DB and OwnerID into commands package
	commands.DB = db

	ownerID, err := bot.OwnerID()
	if err != nil {
		log.Printf("Warning: Could not resolve bot owner: %v", err)
	} else {
		commands.OwnerID = ownerID
		log.Printf("Bot Owner ID set to: %s", commands.OwnerID)
	}

	// 5. Register Event Handlers

	// Interaction Handler (Slash Commands)
	bot.Session.AddHandler(commands.HandleInteraction)

	// Battle results go to the log channel when one is configured.
	if cfg.LogChannelID != "" {
		commands.BattleLogger = events.NewLogger(bot.Session, cfg)
	}

	// 6. Start Bot
	err = bot.Start()
	if err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}
	defer bot.Stop()

	// 7. Register Commands
	commands.RegisterCommands(bot.Session, cfg.GuildID)

	// 8. Wait for Shutdown Signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	log.Println("Bot is running. Press Ctrl+C to exit.")
	<-stop

	log.Println("Gracefully shutting down...")
	if commands.BattleLogger != nil {
		commands.BattleLogger.Wait()
	}
}
