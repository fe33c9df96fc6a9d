package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicwatch/pkg/domain"
)

func TestGate_Decide(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	tbl := []struct {
		name     string
		gate     Gate
		in       GateInput
		decision Decision
		keepNew  bool
	}{
		{
			name: "not enough sources, cadence elapsed", gate: Gate{},
			in:       GateInput{Stored: 3, New: 1, Sources: 5, Contact: domain.ContactDaily, LastReport: now.Add(-48 * time.Hour), Now: now},
			decision: DecisionAccumulate, keepNew: true,
		},
		{
			name: "threshold reached, cadence elapsed", gate: Gate{},
			in:       GateInput{Stored: 3, New: 2, Sources: 5, Contact: domain.ContactDaily, LastReport: now.Add(-48 * time.Hour), Now: now},
			decision: DecisionFire,
		},
		{
			name: "enough sources, cadence not elapsed", gate: Gate{Hold: HoldDiscard},
			in:       GateInput{Stored: 10, New: 3, Sources: 5, Contact: domain.ContactDaily, LastReport: now.Add(-time.Hour), Now: now},
			decision: DecisionHold,
		},
		{
			name: "enough sources, cadence not elapsed, accumulate policy", gate: Gate{Hold: HoldAccumulate},
			in:       GateInput{Stored: 10, New: 3, Sources: 5, Contact: domain.ContactDaily, LastReport: now.Add(-time.Hour), Now: now},
			decision: DecisionHold, keepNew: true,
		},
		{
			name: "nothing new", gate: Gate{},
			in:       GateInput{Stored: 2, Sources: 5, Contact: domain.ContactImmediately, LastReport: now, Now: now},
			decision: DecisionAccumulate,
		},
		{
			name: "immediately fires at once", gate: Gate{},
			in:       GateInput{New: 1, Sources: 1, Contact: domain.ContactImmediately, LastReport: now, Now: now},
			decision: DecisionFire,
		},
		{
			name: "grace shortens cadence", gate: Gate{Grace: 30 * time.Minute},
			in:       GateInput{Stored: 5, Sources: 5, Contact: domain.ContactTwiceADay, LastReport: now.Add(-11*time.Hour - 45*time.Minute), Now: now},
			decision: DecisionFire,
		},
		{
			name: "without grace the same wait holds", gate: Gate{},
			in:       GateInput{Stored: 5, Sources: 5, Contact: domain.ContactTwiceADay, LastReport: now.Add(-11*time.Hour - 45*time.Minute), Now: now},
			decision: DecisionHold,
		},
		{
			name: "exact cadence boundary", gate: Gate{},
			in:       GateInput{Stored: 5, Sources: 5, Contact: domain.ContactWeekly, LastReport: now.Add(-168 * time.Hour), Now: now},
			decision: DecisionFire,
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.gate.Decide(tt.in)
			assert.Equal(t, tt.decision, res.Decision)
			assert.Equal(t, tt.keepNew, res.KeepNew)
			assert.Equal(t, tt.in.Stored+tt.in.New, res.Total)
		})
	}
}

func TestParseHoldPolicy(t *testing.T) {
	p, err := ParseHoldPolicy("")
	require.NoError(t, err)
	assert.Equal(t, HoldDiscard, p)

	p, err = ParseHoldPolicy("accumulate")
	require.NoError(t, err)
	assert.Equal(t, HoldAccumulate, p)

	_, err = ParseHoldPolicy("keep")
	require.Error(t, err)
}
