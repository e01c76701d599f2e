package simulation

import (
	"math"
	"slices"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// Summary describes a sample of float values.
type Summary struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	P50    float64 `yaml:"p50"`
	P90    float64 `yaml:"p90"`
	P99    float64 `yaml:"p99"`
}

// Report aggregates a simulation run.
type Report struct {
	Trials     int `yaml:"trials"`
	Generation int `yaml:"generation"`
	// Cost is the price of a single breeding of the simulated pair.
	Cost breeding.Cost `yaml:"cost"`
	// UpgradeRate is the fraction of trials with a random rarity upgrade.
	UpgradeRate float64 `yaml:"upgrade_rate"`
	// Species counts offspring per species.
	Species map[string]int `yaml:"species"`
	// Rarities counts offspring per rarity name.
	Rarities map[string]int `yaml:"rarities"`
	// Power summarises the offspring stat totals.
	Power Summary `yaml:"power"`
	// AbilityCounts maps number of abilities to number of offspring.
	AbilityCounts map[int]int `yaml:"ability_counts"`
	// TraitCounts maps number of passive traits to number of offspring.
	TraitCounts map[int]int `yaml:"trait_counts"`
}

func newReport(p Params, trials []trial) Report {
	r := Report{
		Trials:        len(trials),
		Generation:    breeding.OffspringGeneration(p.Parent1.Generation, p.Parent2.Generation),
		Cost:          breeding.CalculateCost(p.Parent1, p.Parent2, p.Recipe),
		Species:       make(map[string]int),
		Rarities:      make(map[string]int),
		AbilityCounts: make(map[int]int),
		TraitCounts:   make(map[int]int),
	}
	if len(trials) == 0 {
		return r
	}

	upgrades := 0
	power := make([]float64, len(trials))
	for i, t := range trials {
		if t.upgraded {
			upgrades++
		}
		r.Species[t.species]++
		r.Rarities[t.rarity.String()]++
		r.AbilityCounts[t.abilities]++
		r.TraitCounts[t.traits]++
		power[i] = t.power
	}
	r.UpgradeRate = float64(upgrades) / float64(len(trials))
	r.Power = summarize(power)
	return r
}

// RarityShare returns the fraction of offspring at rarity.
func (r Report) RarityShare(rarity creature.Rarity) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Rarities[rarity.String()]) / float64(r.Trials)
}

// summarize computes mean, population standard deviation and interpolated
// percentiles for xs.
func summarize(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return sorted[n-1]
		}
		f := pos - float64(i)
		return sorted[i]*(1-f) + sorted[i+1]*f
	}

	return Summary{
		Mean:   mean,
		StdDev: math.Sqrt(acc / float64(n)),
		Min:    sorted[0],
		Max:    sorted[n-1],
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
