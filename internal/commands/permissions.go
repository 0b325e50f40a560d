package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var errUnknownNode = errors.New("unknown permission node")

var PermissionCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "perm",
		Description: "Manage who can start card battles and edit permissions",
		Options: []*discordgo.ApplicationCommandOption{
			permSubcommand("add", "Grant a permission node or category to a user"),
			permSubcommand("remove", "Revoke a permission node or category from a user"),
			{
				Name:        "list",
				Description: "Show a user's permissions and whether they can battle",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user to inspect",
						Required:    true,
					},
				},
			},
		},
	},
}

func permSubcommand(name, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: desc,
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "node",
				Description: "Permission node or category",
				Required:    true,
				Choices:     nodeChoices(),
			},
		},
	}
}

// nodeChoices offers every category and node from CommandPermissionMap.
func nodeChoices() []*discordgo.ApplicationCommandOptionChoice {
	var names []string
	for _, node := range knownNodes() {
		category, _, _ := strings.Cut(node, ".")
		if !slices.Contains(names, category) {
			names = append(names, category)
		}
		names = append(names, node)
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}
	return choices
}

func HandlePermissionCommand(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if len(data.Options) == 0 {
		return
	}
	if DB == nil {
		respondError(s, i, "Database not initialized.")
		return
	}

	subcmd := data.Options[0]
	switch subcmd.Name {
	case "add":
		handlePermChange(s, i, subcmd.Options, true)
	case "remove":
		handlePermChange(s, i, subcmd.Options, false)
	case "list":
		handlePermList(s, i, subcmd.Options)
	}
}

func handlePermChange(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption, grant bool) {
	user := options[0].UserValue(s)
	input := options[1].StringValue()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	apply := DB.RevokePermission
	if grant {
		apply = DB.GrantPermission
	}
	changed, err := changePermissions(ctx, user.ID, input, apply)
	if errors.Is(err, errUnknownNode) {
		respondError(s, i, unknownNodeMessage(input))
		return
	}
	if len(changed) == 0 {
		respondError(s, i, "Failed to update any permissions.")
		return
	}

	log.Printf("[PERM] %s | grant=%v | %s", user.Username, grant, strings.Join(changed, ","))
	respondSuccess(s, i, changeMessage(user.Username, changed, grant))
}

// changePermissions resolves input to nodes and applies fn to each one. It
// returns the nodes that were changed; failures are logged and skipped.
func changePermissions(ctx context.Context, userID, input string, fn func(ctx context.Context, userID, node string) error) ([]string, error) {
	nodes := resolveNodes(input)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", errUnknownNode, input)
	}

	var changed []string
	for _, node := range nodes {
		if err := fn(ctx, userID, node); err != nil {
			log.Printf("Failed to update permission %s for user %s: %v", node, userID, err)
			continue
		}
		changed = append(changed, node)
	}
	return changed, nil
}

func changeMessage(username string, nodes []string, grant bool) string {
	var unlocked []string
	for _, node := range nodes {
		unlocked = append(unlocked, commandsForNode(node)...)
	}
	if grant {
		return fmt.Sprintf("✅ Granted %s to **%s**. Unlocks: %s", codeList(nodes), username, strings.Join(unlocked, ", "))
	}
	return fmt.Sprintf("🗑️ Revoked %s from **%s**. Locks: %s", codeList(nodes), username, strings.Join(unlocked, ", "))
}

func unknownNodeMessage(input string) string {
	return fmt.Sprintf("Unknown permission node or category `%s`. Known nodes: %s", input, codeList(knownNodes()))
}

func resolveNodes(input string) []string {
	if IsValidPermissionNode(input) {
		return []string{input}
	}
	if nodes := GetPermissionsByCategory(input); len(nodes) > 0 {
		slices.Sort(nodes)
		return nodes
	}
	return nil
}

// knownNodes returns every node in CommandPermissionMap, sorted.
func knownNodes() []string {
	var nodes []string
	for _, node := range CommandPermissionMap {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	return slices.Compact(nodes)
}

// commandsForNode lists the slash commands a node unlocks, e.g. "/battle".
func commandsForNode(node string) []string {
	var cmds []string
	for name, n := range CommandPermissionMap {
		if n == node {
			cmds = append(cmds, "/"+name)
		}
	}
	slices.Sort(cmds)
	return cmds
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}

func handlePermList(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	user := options[0].UserValue(s)

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	nodes, err := DB.ListPermissions(ctx, user.ID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to list permissions: %v", err))
		return
	}
	respondSuccess(s, i, describePermissions(user.ID, user.Username, nodes))
}

// describePermissions renders a user's nodes with the commands each one
// unlocks, followed by whether the user may start a battle.
func describePermissions(userID, username string, nodes []string) string {
	var b strings.Builder
	if len(nodes) == 0 {
		fmt.Fprintf(&b, "**%s** has no explicit permissions.\n", username)
	} else {
		fmt.Fprintf(&b, "📋 **Permissions for %s**:\n", username)
		for _, n := range nodes {
			cmds := commandsForNode(n)
			if len(cmds) == 0 {
				fmt.Fprintf(&b, "- `%s` (unused)\n", n)
				continue
			}
			fmt.Fprintf(&b, "- `%s` → %s\n", n, strings.Join(cmds, ", "))
		}
	}

	battleNode := CommandPermissionMap["battle"]
	switch {
	case OwnerID != "" && userID == OwnerID:
		fmt.Fprintf(&b, "🎴 %s owns the bot and can start battles.", username)
	case slices.Contains(nodes, battleNode):
		fmt.Fprintf(&b, "🎴 %s can start battles.", username)
	default:
		category, _, _ := strings.Cut(battleNode, ".")
		fmt.Fprintf(&b, "⛔ %s cannot start battles. Grant `%s` or the `%s` category.", username, battleNode, category)
	}
	return b.String()
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
		},
	})
}
