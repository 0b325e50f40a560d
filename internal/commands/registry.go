package commands

import (
	"context"
	"log"
	"strings"
	"time"

	"cardbattler/internal/database"

	"github.com/bwmarrin/discordgo"
)

// CommandPermissionMap maps command names to their required permission node.
var CommandPermissionMap = map[string]string{
	// Games
	"battle": "games.battle",

	// Permissions
	"perm": "admin.perm",
}

// DB instance for permission checks
var DB *database.DB
var OwnerID string

const dbTimeout = 5 * time.Second

func AllCommands() []*discordgo.ApplicationCommand {
	all := make([]*discordgo.ApplicationCommand, 0, len(BattleCommands)+len(PermissionCommands))
	all = append(all, BattleCommands...)
	all = append(all, PermissionCommands...)
	return all
}

// RegisterCommands registers all slash commands with Discord.
func RegisterCommands(s *discordgo.Session, guildID string) {
	log.Println("Registering commands...")
	for _, cmd := range AllCommands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.Printf("Cannot create command '%v': %v", cmd.Name, err)
		}
	}
	log.Println("Commands registered successfully!")
}

// HandleInteraction is the central dispatcher for all slash commands.
func HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionMessageComponent {
		id := i.MessageComponentData().CustomID
		if strings.HasPrefix(id, "game_battle_") {
			HandleBattleComponent(s, i)
		}
		return
	}

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	user := interactionUser(i)

	if !hasPermission(user.ID, data.Name) {
		log.Printf("[COMMAND DENIED] User: %s (%s) | Command: %s | Reason: Low Permissions", user.Username, user.ID, data.Name)
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "🚫 You do not have permission to use this command.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	log.Printf("[COMMAND EXEC] User: %s (%s) | Guild: %s | Command: %s", user.Username, user.ID, i.GuildID, data.Name)

	switch data.Name {
	case "battle":
		HandleBattleCommand(s, i, data)
	case "perm":
		HandlePermissionCommand(s, i, data)
	}
}

// interactionUser returns the invoking user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

func hasPermission(userID string, commandName string) bool {
	// The configured owner bypasses every check. OwnerID stays empty when
	// the application lookup failed.
	if OwnerID != "" && userID == OwnerID {
		return true
	}

	// Commands without a node are closed to everyone else.
	node, exists := CommandPermissionMap[commandName]
	if !exists {
		return false
	}

	if DB == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	has, err := DB.HasPermission(ctx, userID, node)
	if err != nil {
		log.Printf("Error checking permission for user %s node %s: %v", userID, node, err)
		return false
	}

	return has
}

// IsValidPermissionNode checks if a permission node exists in the map.
func IsValidPermissionNode(node string) bool {
	for _, n := range CommandPermissionMap {
		if n == node {
			return true
		}
	}
	return false
}

// GetPermissionsByCategory returns all permission nodes under a category,
// e.g. "games" -> "games.battle".
func GetPermissionsByCategory(category string) []string {
	var nodes []string
	prefix := category + "."
	for _, node := range CommandPermissionMap {
		if strings.HasPrefix(node, prefix) {
			nodes = append(nodes, node)
		}
	}
	return uniqueStrings(nodes)
}

func uniqueStrings(input []string) []string {
	u := make([]string, 0, len(input))
	m := make(map[string]bool)
	for _, val := range input {
		if !m[val] {
			m[val] = true
			u = append(u, val)
		}
	}
	return u
}
