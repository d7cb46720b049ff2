// Package intent predicts the behavioral purpose behind observed
// vocalizations by combining the current communication pattern with the
// recent pattern history.
package intent

import (
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/history"
)

// Intent is the closed set of predictable behavioral intents.
type Intent string

const (
	LandingApproach   Intent = "landing_approach"
	TerritoryDefense  Intent = "territory_defense"
	FlockGathering    Intent = "flock_gathering"
	PredatorAvoidance Intent = "predator_avoidance"
	NormalFlight      Intent = "normal_flight"
)

// Order is the fixed declaration order of intents. Argmax ties are broken by
// this order (first maximum wins) so prediction never depends on map
// iteration order.
var Order = []Intent{
	LandingApproach,
	TerritoryDefense,
	FlockGathering,
	PredatorAvoidance,
	NormalFlight,
}

// Prediction is the normalized intent distribution with its argmax.
type Prediction struct {
	PrimaryIntent Intent             `json:"primary_intent"`
	Confidence    float64            `json:"confidence"`
	AllScores     map[Intent]float64 `json:"all_scores"`
}

// Additive weight contributions from the current pattern and from recurrence
// over the recent history window.
const (
	alarmWeight       = 0.4
	territorialWeight = 0.3
	flockWeight       = 0.4

	historyWindow               = 5
	alarmRecurrenceMin          = 2 // strictly more than this many alarms reinforces avoidance
	alarmRecurrenceWeight       = 0.3
	territorialRecurrenceMin    = 1
	territorialRecurrenceWeight = 0.2
)

// Predict combines the current pattern with the last few history entries into
// a normalized probability distribution over intents. If no contribution is
// non-zero the distribution collapses to normal_flight = 1.0.
func Predict(p pattern.Pattern, hist *history.Store[pattern.Pattern]) Prediction {
	scores := map[Intent]float64{
		LandingApproach:   0,
		TerritoryDefense:  0,
		FlockGathering:    0,
		PredatorAvoidance: 0,
		NormalFlight:      0,
	}

	if p.AlarmSignal {
		scores[PredatorAvoidance] += alarmWeight
	}
	if p.TerritorialBehavior {
		scores[TerritoryDefense] += territorialWeight
	}
	if p.FlockCommunication {
		scores[FlockGathering] += flockWeight
	}

	// Recurrence reinforcement over the recent history window.
	if hist != nil {
		alarms := hist.CountMatching(func(h pattern.Pattern) bool { return h.AlarmSignal }, historyWindow)
		if alarms > alarmRecurrenceMin {
			scores[PredatorAvoidance] += alarmRecurrenceWeight
		}
		territorial := hist.CountMatching(func(h pattern.Pattern) bool { return h.TerritorialBehavior }, historyWindow)
		if territorial > territorialRecurrenceMin {
			scores[TerritoryDefense] += territorialRecurrenceWeight
		}
	}

	total := 0.0
	for _, v := range scores {
		total += v
	}
	if total > 0 {
		for k := range scores {
			scores[k] /= total
		}
	} else {
		scores[NormalFlight] = 1.0
	}

	// Deterministic argmax over the fixed declaration order.
	primary := Order[0]
	best := scores[primary]
	for _, it := range Order[1:] {
		if scores[it] > best {
			primary = it
			best = scores[it]
		}
	}

	return Prediction{
		PrimaryIntent: primary,
		Confidence:    best,
		AllScores:     scores,
	}
}
