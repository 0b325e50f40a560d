package main

import (
	"fmt"
	"strings"

	"cardbattler/internal/battle"
	"cardbattler/internal/battlelog"

	"github.com/pterm/pterm"
)

// handOptions labels each card for the select prompt. Labels carry the
// hand position so duplicate cards stay distinct.
func handOptions(hand []battle.Card) ([]string, map[string]int) {
	labels := make([]string, 0, len(hand))
	index := make(map[string]int, len(hand))
	for i, c := range hand {
		label := fmt.Sprintf("%d. %s %s  ATK %d  DEF %d", i+1, c.Symbol, c.Name, c.Attack, c.Defense)
		labels = append(labels, label)
		index[label] = i
	}
	return labels, index
}

func cardBox(title string, c battle.Card, crit, winner bool) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintfln("%s  %s\nATK %d  DEF %d", c.Symbol, c.Name, c.Attack, c.Defense)
	if crit {
		body += pterm.LightRed("💥 Critical!") + "\n"
	}
	if winner {
		title = pterm.LightGreen(title + " 🏆")
	}
	return pbox.WithTitle(title).WithTitleTopCenter().Sprint(body)
}

func emptyCardBox(title string) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pbox.WithTitle(title).WithTitleTopCenter().Sprint("❔\nATK -  DEF -")
}

func scoreText(st battle.State) string {
	return pterm.Sprintfln("You %s - %s AI\nRound %d / %d",
		pterm.LightCyan(st.PlayerScore), pterm.LightRed(st.OpponentScore), st.RoundsPlayed, st.MaxRounds)
}

func printState(st battle.State, last *battle.RoundResolved, lines []string) {
	player, opponent := emptyCardBox("|YOU|"), emptyCardBox("|AI|")
	if last != nil {
		player = cardBox("|YOU|", last.PlayerCard, last.PlayerCrit, last.Result == battle.PlayerWins)
		opponent = cardBox("|AI|", last.OpponentCard, last.OpponentCrit, last.Result == battle.OpponentWins)
	}

	score := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1).
		WithTitle(pterm.LightYellow("|SCORE|")).WithTitleTopCenter().Sprint(scoreText(st))

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: player}, {Data: opponent}, {Data: score}},
	}).Render()

	if len(lines) > 0 {
		pterm.DefaultBox.WithTitle("|LOG|").Println(strings.Join(lines, "\n"))
	}

	if st.Status == battle.StatusFinished {
		style := pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
		switch st.Winner {
		case battle.PlayerWins:
			style = pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
		case battle.OpponentWins:
			style = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
		}
		pterm.DefaultHeader.WithBackgroundStyle(style).WithFullWidth().Println(battlelog.GameText(st.Winner))
	}
}
