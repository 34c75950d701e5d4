package catch

// Source is the randomness the game draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// RandomPolicy picks reward categories by weight and samples uniform ranges.
// It holds no state beyond its source, so a seeded source makes every
// decision reproducible.
type RandomPolicy struct {
	src     Source
	weights [categoryCount]int
	total   int
}

// NewRandomPolicy creates a policy over the reward weights in rules.
func NewRandomPolicy(src Source, rules *Rules) *RandomPolicy {
	p := &RandomPolicy{src: src}
	for _, c := range rewardOrder {
		w := max(rules.Spec(c).Weight, 0)
		p.weights[c] = w
		p.total += w
	}
	return p
}

// ChooseCategory draws a reward category. Never returns Hazard.
func (p *RandomPolicy) ChooseCategory() Category {
	if p.total <= 0 {
		return Common
	}
	n := p.src.Intn(p.total)
	for _, c := range rewardOrder {
		if n < p.weights[c] {
			return c
		}
		n -= p.weights[c]
	}
	return Common
}

// Uniform returns a value in [lo, hi]. lo == hi returns lo.
func (p *RandomPolicy) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.src.Float64()*(hi-lo)
}
