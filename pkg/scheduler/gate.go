package scheduler

import (
	"fmt"
	"time"

	"github.com/umputun/topicwatch/pkg/domain"
)

// HoldPolicy defines what happens to new items when sources suffice but the cadence has not elapsed
type HoldPolicy string

// supported hold policies
const (
	HoldDiscard    HoldPolicy = "discard"
	HoldAccumulate HoldPolicy = "accumulate"
)

// Decision is the outcome of the threshold gate
type Decision string

// gate decisions
const (
	DecisionFire       Decision = "fire"       // report now, clear candidates
	DecisionHold       Decision = "hold"       // enough sources, waiting for the cadence
	DecisionAccumulate Decision = "accumulate" // not enough sources, keep new items
)

// Gate decides whether a report fires for a topic
type Gate struct {
	Grace time.Duration // subtracted from the contact cadence
	Hold  HoldPolicy
}

// GateInput is what the gate looks at for one topic
type GateInput struct {
	Stored     int // persisted candidate items
	New        int // items vetted in this cycle
	Sources    int // required sources threshold
	Contact    domain.Contact
	LastReport time.Time
	Now        time.Time
}

// GateResult is the gate decision with its inputs resolved
type GateResult struct {
	Decision      Decision
	Total         int
	EnoughSources bool
	EnoughTime    bool
	KeepNew       bool // new items should be persisted as candidates
}

// ParseHoldPolicy converts config value to HoldPolicy, empty means discard
func ParseHoldPolicy(s string) (HoldPolicy, error) {
	switch HoldPolicy(s) {
	case "", HoldDiscard:
		return HoldDiscard, nil
	case HoldAccumulate:
		return HoldAccumulate, nil
	}
	return "", fmt.Errorf("unknown hold policy %q", s)
}

// Decide applies the dual threshold: enough sources and enough time since the last report
func (g Gate) Decide(in GateInput) GateResult {
	res := GateResult{Total: in.Stored + in.New}
	res.EnoughSources = res.Total >= in.Sources

	wait := in.Contact.Cadence() - g.Grace
	if wait < 0 {
		wait = 0
	}
	res.EnoughTime = in.Now.Sub(in.LastReport) >= wait

	switch {
	case res.EnoughSources && res.EnoughTime:
		res.Decision = DecisionFire
	case res.EnoughSources:
		res.Decision = DecisionHold
		res.KeepNew = g.Hold == HoldAccumulate && in.New > 0
	default:
		res.Decision = DecisionAccumulate
		res.KeepNew = in.New > 0
	}
	return res
}
