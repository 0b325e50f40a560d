package battle

// scriptedRand replays fixed values. Once a script runs out, Float64
// returns 0.99 (never a crit) and IntN returns 0.
type scriptedRand struct {
	floats     []float64
	ints       []int
	floatCalls int
	intCalls   int
}

func (r *scriptedRand) Float64() float64 {
	r.floatCalls++
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	r.intCalls++
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < 0 || v >= n {
		panic("scripted IntN value out of range")
	}
	return v
}

// identityShuffle returns the IntN script that makes Shuffle leave a deck
// of n cards in its original order.
func identityShuffle(n int) []int {
	out := make([]int, 0, n)
	for i := n - 1; i > 0; i-- {
		out = append(out, i)
	}
	return out
}
