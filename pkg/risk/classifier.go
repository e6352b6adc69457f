// Package risk holds the two post-ordering heuristics. Both are pure
// functions of a single record and may fire together.
package risk

import "github.com/dd0wney/cluso-triage/pkg/patient"

// Drug-seeking thresholds: overreported pain and symptoms against low acuity.
const (
	DrugSeekingPainThreshold     = 0.7 // pain exaggeration must exceed
	DrugSeekingSymptomThreshold  = 7   // symptom severity must exceed
	DrugSeekingSeverityThreshold = 5   // severity must be below
)

// Anxiety thresholds: anxious patient with elevated heart rate.
const (
	AnxietyIndexThreshold     = 0.7 // anxiety index must exceed
	AnxietyHeartRateThreshold = 120 // heart rate must exceed
)

// Flags are the independent classifier outcomes for one record.
type Flags struct {
	DrugSeeking bool `json:"drug_seeking"`
	AnxietyRisk bool `json:"anxiety_risk"`
}

// Any reports whether either flag is set.
func (f Flags) Any() bool {
	return f.DrugSeeking || f.AnxietyRisk
}

// IsDrugSeeking flags high reported pain and symptoms inconsistent with low
// measured severity. All comparisons are strict.
func IsDrugSeeking(r patient.Record) bool {
	return r.PainExaggeration > DrugSeekingPainThreshold &&
		r.SymptomSeverity > DrugSeekingSymptomThreshold &&
		r.Severity < DrugSeekingSeverityThreshold
}

// IsHighAnxietyRisk flags anxiety-prone patients whose heart rate is already
// elevated. All comparisons are strict.
func IsHighAnxietyRisk(r patient.Record) bool {
	return r.AnxietyIndex > AnxietyIndexThreshold && r.HeartRate > AnxietyHeartRateThreshold
}

// Classify evaluates both heuristics.
func Classify(r patient.Record) Flags {
	return Flags{
		DrugSeeking: IsDrugSeeking(r),
		AnxietyRisk: IsHighAnxietyRisk(r),
	}
}
