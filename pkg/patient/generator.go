package patient

import "math/rand"

// Initial attribute ranges (inclusive).
const (
	MinSeverity  = 1
	MaxSeverity  = 10
	MinHeartRate = 60
	MaxHeartRate = 150
	MinOxygen    = 85
	MaxOxygen    = 100
	MinSymptom   = 1
	MaxSymptom   = 10

	// AnxietySpikeThreshold is the anxiety index above which a worsening
	// patient may spike further.
	AnxietySpikeThreshold = 0.7
)

// UpdatePolicy controls how often a condition worsens during Update.
type UpdatePolicy struct {
	WorsenProbability       float64 // chance a patient worsens at all
	AnxietySpikeProbability float64 // chance an anxious, worsening patient spikes further
}

// DefaultUpdatePolicy returns the simulation defaults.
func DefaultUpdatePolicy() UpdatePolicy {
	return UpdatePolicy{
		WorsenProbability:       0.3,
		AnxietySpikeProbability: 0.5,
	}
}

// Generator creates and updates records from an explicit random source so
// that runs are reproducible from a seed. It is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	policy UpdatePolicy
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorFromSource(rand.NewSource(seed))
}

// NewGeneratorFromSource creates a generator drawing from src.
func NewGeneratorFromSource(src rand.Source) *Generator {
	return &Generator{
		rng:    rand.New(src),
		policy: DefaultUpdatePolicy(),
	}
}

// WithPolicy replaces the update policy and returns the generator.
func (g *Generator) WithPolicy(p UpdatePolicy) *Generator {
	g.policy = p
	return g
}

// Policy returns the active update policy.
func (g *Generator) Policy() UpdatePolicy {
	return g.policy
}

// NewRecord draws a fresh record with the given id.
func (g *Generator) NewRecord(id uint64) Record {
	return Record{
		ID:               id,
		Severity:         g.between(MinSeverity, MaxSeverity),
		HeartRate:        g.between(MinHeartRate, MaxHeartRate),
		OxygenLevel:      g.between(MinOxygen, MaxOxygen),
		SymptomSeverity:  g.between(MinSymptom, MaxSymptom),
		AnxietyIndex:     g.rng.Float64(),
		PainExaggeration: g.rng.Float64(),
	}
}

// Batch creates n records with ids 0..n-1.
func (g *Generator) Batch(n int) []Record {
	if n <= 0 {
		return nil
	}
	records := make([]Record, n)
	for i := range records {
		records[i] = g.NewRecord(uint64(i))
	}
	return records
}

// Update simulates one tick of a patient's condition. A worsening patient
// gains severity, heart rate and symptoms and loses oxygen; an anxious one
// may spike heart rate and symptoms further. Reports whether r worsened.
func (g *Generator) Update(r *Record) bool {
	if g.rng.Float64() >= g.policy.WorsenProbability {
		return false
	}

	r.Severity += g.between(1, 3)
	r.HeartRate += g.between(5, 15)
	r.OxygenLevel -= g.between(1, 5)
	r.SymptomSeverity += g.between(1, 3)

	if r.AnxietyIndex > AnxietySpikeThreshold && g.rng.Float64() < g.policy.AnxietySpikeProbability {
		r.HeartRate += g.between(10, 20)
		r.SymptomSeverity += g.between(2, 4)
	}
	return true
}

// UpdateAll applies Update to every record in order and returns how many
// worsened.
func (g *Generator) UpdateAll(records []Record) int {
	worsened := 0
	for i := range records {
		if g.Update(&records[i]) {
			worsened++
		}
	}
	return worsened
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
