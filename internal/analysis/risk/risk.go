// Package risk fuses species base risk, detection confidence, communication
// pattern, and behavioral intent into a bounded risk score with a discrete
// alert level and a default operational action.
package risk

import (
	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/species"
)

// AlertLevel is the ordered severity bucket derived from the risk score.
type AlertLevel int

const (
	AlertLow AlertLevel = iota
	AlertMedium
	AlertHigh
	AlertCritical
)

// String returns the wire representation of the alert level.
func (l AlertLevel) String() string {
	switch l {
	case AlertMedium:
		return "MEDIUM"
	case AlertHigh:
		return "HIGH"
	case AlertCritical:
		return "CRITICAL"
	default:
		return "LOW"
	}
}

// MarshalJSON encodes the alert level as its string form.
func (l AlertLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// RecommendedAction is the default operational response paired with an alert
// level.
type RecommendedAction string

const (
	ActionContinueNormal     RecommendedAction = "CONTINUE_NORMAL"
	ActionIncreaseMonitoring RecommendedAction = "INCREASE_MONITORING"
	ActionDelayTakeoff       RecommendedAction = "DELAY_TAKEOFF"
	ActionRunwayClosure      RecommendedAction = "IMMEDIATE_RUNWAY_CLOSURE"
)

// Assessment is the scoring result. Derived deterministically, never mutated.
type Assessment struct {
	RiskScore         float64           `json:"risk_score"` // clamped to [0,1]
	AlertLevel        AlertLevel        `json:"alert_level"`
	RecommendedAction RecommendedAction `json:"recommended_action"`
}

// Additive modifiers applied on top of base risk times confidence.
const (
	alarmBonus           = 0.2
	criticalUrgencyBonus = 0.3
	highUrgencyBonus     = 0.15
	flockBonus           = 0.1
)

// intentMultipliers scale risk by the predicted behavioral intent. Birds
// avoiding a predator are less likely to approach aircraft, hence the only
// multiplier below one.
var intentMultipliers = map[intent.Intent]float64{
	intent.LandingApproach:   1.5,
	intent.TerritoryDefense:  1.3,
	intent.FlockGathering:    1.2,
	intent.PredatorAvoidance: 0.8,
	intent.NormalFlight:      1.0,
}

// Score computes the risk assessment for one detection.
//
// The intent multiplier is interpolated by prediction confidence
// (risk *= 1 + (mult-1)*conf) so low-confidence predictions barely move the
// score. The stacked additive bonuses can push the pre-clamp value above 1.0;
// clamping happens once, at the end, as the only safety net.
func Score(profile species.Profile, confidence float64, p pattern.Pattern, pred intent.Prediction) Assessment {
	risk := profile.BaseRisk * confidence

	if p.AlarmSignal {
		risk += alarmBonus
	}
	switch p.Urgency {
	case pattern.UrgencyCritical:
		risk += criticalUrgencyBonus
	case pattern.UrgencyHigh:
		risk += highUrgencyBonus
	}
	if p.FlockCommunication {
		risk += flockBonus
	}

	multiplier, ok := intentMultipliers[pred.PrimaryIntent]
	if !ok {
		multiplier = 1.0
	}
	risk *= 1 + (multiplier-1)*pred.Confidence

	risk = clamp01(risk)

	level, action := classify(risk)
	return Assessment{
		RiskScore:         risk,
		AlertLevel:        level,
		RecommendedAction: action,
	}
}

// classify maps a risk score to alert level and default action. Thresholds
// are strict: a score sitting exactly on a boundary belongs to the lower tier.
func classify(risk float64) (AlertLevel, RecommendedAction) {
	switch {
	case risk > 0.8:
		return AlertCritical, ActionRunwayClosure
	case risk > 0.6:
		return AlertHigh, ActionDelayTakeoff
	case risk > 0.4:
		return AlertMedium, ActionIncreaseMonitoring
	default:
		return AlertLow, ActionContinueNormal
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
