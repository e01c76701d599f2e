package creature

// Stats holds the six combat statistics of a creature.
//
// Values supplied by a host may be fractional; every block produced by the
// breeding engine holds whole numbers.
type Stats struct {
	Attack       float64 `yaml:"attack"`
	Defense      float64 `yaml:"defense"`
	MagicAttack  float64 `yaml:"magic_attack"`
	MagicDefense float64 `yaml:"magic_defense"`
	Speed        float64 `yaml:"speed"`
	Accuracy     float64 `yaml:"accuracy"`
}

// StatNames lists the stat fields in their canonical roll order.
var StatNames = [6]string{"attack", "defense", "magic_attack", "magic_defense", "speed", "accuracy"}

// Values returns the stats in canonical order.
func (s Stats) Values() [6]float64 {
	return [6]float64{s.Attack, s.Defense, s.MagicAttack, s.MagicDefense, s.Speed, s.Accuracy}
}

// StatsFromValues builds a Stats block from values in canonical order.
func StatsFromValues(v [6]float64) Stats {
	return Stats{
		Attack:       v[0],
		Defense:      v[1],
		MagicAttack:  v[2],
		MagicDefense: v[3],
		Speed:        v[4],
		Accuracy:     v[5],
	}
}

// UniformStats returns a block with every field set to v.
func UniformStats(v float64) Stats {
	return StatsFromValues([6]float64{v, v, v, v, v, v})
}

// Map applies fn to each field in canonical order.
func (s Stats) Map(fn func(name string, v float64) float64) Stats {
	vals := s.Values()
	for i := range vals {
		vals[i] = fn(StatNames[i], vals[i])
	}
	return StatsFromValues(vals)
}

// Zip combines s and o field by field with fn, in canonical order.
func (s Stats) Zip(o Stats, fn func(name string, a, b float64) float64) Stats {
	a, b := s.Values(), o.Values()
	var out [6]float64
	for i := range out {
		out[i] = fn(StatNames[i], a[i], b[i])
	}
	return StatsFromValues(out)
}

// Total returns the sum of all six fields.
func (s Stats) Total() float64 {
	var t float64
	for _, v := range s.Values() {
		t += v
	}
	return t
}
