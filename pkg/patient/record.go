// Package patient holds the per-patient attribute snapshot fed into the
// triage pipeline and the seeded generator that creates and worsens it.
package patient

import "fmt"

// Record is one patient's clinical attributes. ID is the graph node key and
// is never reused within a run.
type Record struct {
	ID               uint64  `json:"id"`
	Severity         int     `json:"severity" validate:"min=1"`         // overall acuity, starts in [1,10]
	HeartRate        int     `json:"heart_rate" validate:"min=1"`       // starts in [60,150]
	OxygenLevel      int     `json:"oxygen_level" validate:"max=100"`   // starts in [85,100]
	SymptomSeverity  int     `json:"symptom_severity" validate:"min=1"` // starts in [1,10]
	AnxietyIndex     float64 `json:"anxiety_index" validate:"min=0,max=1"`
	PainExaggeration float64 `json:"pain_exaggeration" validate:"min=0,max=1"`
}

// String returns a compact description used in logs and test failures.
func (r Record) String() string {
	return fmt.Sprintf("patient{id=%d sev=%d hr=%d o2=%d sym=%d anx=%.2f pain=%.2f}",
		r.ID, r.Severity, r.HeartRate, r.OxygenLevel, r.SymptomSeverity, r.AnxietyIndex, r.PainExaggeration)
}

// IDs returns the record ids in input order.
func IDs(records []Record) []uint64 {
	ids := make([]uint64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
