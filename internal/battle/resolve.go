package battle

// CritChance is the probability of a critical hit for each side per round.
const CritChance = 0.1

// CritMultiplier scales a card's attack on a critical hit.
const CritMultiplier = 2

// Result is the outcome of a round or a whole game.
type Result string

const (
	PlayerWins   Result = "player_wins"
	OpponentWins Result = "opponent_wins"
	Tie          Result = "tie"
)

// RoundOutcome describes one resolved round.
type RoundOutcome struct {
	PlayerCard     Card
	OpponentCard   Card
	PlayerCrit     bool
	OpponentCrit   bool
	PlayerDamage   int
	OpponentDamage int
	Result         Result
}

// ResolveRound compares two cards. It draws exactly two values from rng,
// the player's crit roll first, whatever the outcome.
func ResolveRound(player, opponent Card, rng Rand) RoundOutcome {
	playerCrit := rng.Float64() < CritChance
	opponentCrit := rng.Float64() < CritChance

	out := RoundOutcome{
		PlayerCard:     player,
		OpponentCard:   opponent,
		PlayerCrit:     playerCrit,
		OpponentCrit:   opponentCrit,
		PlayerDamage:   damage(player.Attack, playerCrit, opponent.Defense),
		OpponentDamage: damage(opponent.Attack, opponentCrit, player.Defense),
	}
	out.Result = compare(out.PlayerDamage, out.OpponentDamage)
	return out
}

func damage(attack int, crit bool, defense int) int {
	if crit {
		attack *= CritMultiplier
	}
	return max(0, attack-defense)
}

func compare(player, opponent int) Result {
	switch {
	case player > opponent:
		return PlayerWins
	case opponent > player:
		return OpponentWins
	default:
		return Tie
	}
}
