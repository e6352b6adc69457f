package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-triage/pkg/metrics"
	"github.com/dd0wney/cluso-triage/pkg/patient"
)

func TestSimulation_Deterministic(t *testing.T) {
	run := func() []uint64 {
		sim := NewSimulation(NewPipeline(DefaultOptions()), patient.NewGenerator(2025), 25)
		var order []uint64
		for i := 0; i < 3; i++ {
			result, _, err := sim.Step()
			require.NoError(t, err)
			for _, a := range result.Assessments {
				order = append(order, a.PatientID)
			}
		}
		return order
	}

	assert.Equal(t, run(), run())
}

func TestSimulation_StepMakesUpdatesVisible(t *testing.T) {
	gen := patient.NewGenerator(10).WithPolicy(patient.UpdatePolicy{WorsenProbability: 1})
	sim := NewSimulation(NewPipeline(DefaultOptions()), gen, 10)

	before := sim.Records()
	initial, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, initial.Round)

	result, worsened, err := sim.Step()
	require.NoError(t, err)
	assert.Equal(t, 10, worsened)
	assert.Equal(t, 1, sim.Round())
	assert.Equal(t, 1, result.Round)

	after := sim.Records()
	severity := make(map[uint64]int, len(after))
	for i := range after {
		assert.Greater(t, after[i].Severity, before[i].Severity)
		severity[after[i].ID] = after[i].Severity
	}
	for _, a := range result.Assessments {
		assert.Equal(t, severity[a.PatientID], a.Severity, "assessment must reflect updated record")
	}
}

func TestSimulation_RecordsIsACopy(t *testing.T) {
	sim := NewSimulation(NewPipeline(DefaultOptions()), patient.NewGenerator(1), 3)
	recs := sim.Records()
	recs[0].Severity = 999

	assert.NotEqual(t, 999, sim.Records()[0].Severity)
}

func TestSimulation_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	opts := DefaultOptions()
	opts.Metrics = reg

	gen := patient.NewGenerator(3).WithPolicy(patient.UpdatePolicy{WorsenProbability: 1})
	sim := NewSimulation(NewPipeline(opts), gen, 4)
	_, _, err := sim.Step()
	require.NoError(t, err)
	_, _, err = sim.Step()
	require.NoError(t, err)

	families, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		switch mf.GetName() {
		case "triage_simulation_round":
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetGauge().GetValue())
		case "triage_patients_worsened_total":
			assert.Equal(t, 8.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
