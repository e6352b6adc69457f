package patient

import (
	"math/rand"
	"testing"
)

func TestNewRecord_Ranges(t *testing.T) {
	g := NewGenerator(42)

	for i := 0; i < 500; i++ {
		r := g.NewRecord(uint64(i))
		if r.ID != uint64(i) {
			t.Fatalf("ID = %d, want %d", r.ID, i)
		}
		if r.Severity < MinSeverity || r.Severity > MaxSeverity {
			t.Errorf("Severity %d out of range", r.Severity)
		}
		if r.HeartRate < MinHeartRate || r.HeartRate > MaxHeartRate {
			t.Errorf("HeartRate %d out of range", r.HeartRate)
		}
		if r.OxygenLevel < MinOxygen || r.OxygenLevel > MaxOxygen {
			t.Errorf("OxygenLevel %d out of range", r.OxygenLevel)
		}
		if r.SymptomSeverity < MinSymptom || r.SymptomSeverity > MaxSymptom {
			t.Errorf("SymptomSeverity %d out of range", r.SymptomSeverity)
		}
		if r.AnxietyIndex < 0 || r.AnxietyIndex >= 1 {
			t.Errorf("AnxietyIndex %f out of range", r.AnxietyIndex)
		}
		if r.PainExaggeration < 0 || r.PainExaggeration >= 1 {
			t.Errorf("PainExaggeration %f out of range", r.PainExaggeration)
		}
	}
}

func TestBatch_SameSeedSameRecords(t *testing.T) {
	a := NewGenerator(7).Batch(25)
	b := NewGenerator(7).Batch(25)

	if len(a) != 25 || len(b) != 25 {
		t.Fatalf("Batch lengths = %d, %d, want 25", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("record %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i].ID != uint64(i) {
			t.Errorf("record %d has ID %d", i, a[i].ID)
		}
	}
}

func TestBatch_NonPositive(t *testing.T) {
	if got := NewGenerator(1).Batch(0); got != nil {
		t.Errorf("Batch(0) = %v, want nil", got)
	}
}

func TestUpdate_Monotonic(t *testing.T) {
	g := NewGenerator(99)
	records := g.Batch(50)

	for round := 0; round < 20; round++ {
		before := make([]Record, len(records))
		copy(before, records)

		g.UpdateAll(records)

		for i := range records {
			b, a := before[i], records[i]
			if a.Severity < b.Severity || a.HeartRate < b.HeartRate || a.SymptomSeverity < b.SymptomSeverity {
				t.Fatalf("round %d: record %d improved: %v -> %v", round, i, b, a)
			}
			if a.OxygenLevel > b.OxygenLevel {
				t.Fatalf("round %d: oxygen rose: %v -> %v", round, b, a)
			}
			if a.AnxietyIndex != b.AnxietyIndex || a.PainExaggeration != b.PainExaggeration || a.ID != b.ID {
				t.Fatalf("round %d: immutable attribute changed: %v -> %v", round, b, a)
			}
		}
	}
}

func TestUpdate_Policy(t *testing.T) {
	t.Run("never worsens", func(t *testing.T) {
		g := NewGenerator(3).WithPolicy(UpdatePolicy{WorsenProbability: 0})
		records := g.Batch(30)
		if n := g.UpdateAll(records); n != 0 {
			t.Errorf("UpdateAll worsened %d records, want 0", n)
		}
	})

	t.Run("always worsens", func(t *testing.T) {
		g := NewGenerator(3).WithPolicy(UpdatePolicy{WorsenProbability: 1, AnxietySpikeProbability: 1})
		r := Record{ID: 1, Severity: 5, HeartRate: 100, OxygenLevel: 95, SymptomSeverity: 5, AnxietyIndex: 0.9}
		if !g.Update(&r) {
			t.Fatal("Update returned false with WorsenProbability=1")
		}
		// base worsening plus a guaranteed anxiety spike
		if r.HeartRate < 100+5+10 {
			t.Errorf("HeartRate = %d, want >= 115", r.HeartRate)
		}
		if r.SymptomSeverity < 5+1+2 {
			t.Errorf("SymptomSeverity = %d, want >= 8", r.SymptomSeverity)
		}
	})

	t.Run("calm patients never spike", func(t *testing.T) {
		g := NewGeneratorFromSource(rand.NewSource(5)).WithPolicy(UpdatePolicy{WorsenProbability: 1, AnxietySpikeProbability: 1})
		r := Record{ID: 1, Severity: 5, HeartRate: 100, OxygenLevel: 95, SymptomSeverity: 5, AnxietyIndex: 0.7}
		g.Update(&r)
		if r.HeartRate > 100+15 {
			t.Errorf("HeartRate = %d, want <= 115 without spike", r.HeartRate)
		}
		if r.SymptomSeverity > 5+3 {
			t.Errorf("SymptomSeverity = %d, want <= 8 without spike", r.SymptomSeverity)
		}
	})
}

func TestIDs(t *testing.T) {
	records := []Record{{ID: 4}, {ID: 2}, {ID: 9}}
	ids := IDs(records)
	want := []uint64{4, 2, 9}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
