package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/species"
)

func profileWithRisk(base float64) species.Profile {
	return species.Profile{ScientificName: "Testus birdus", BaseRisk: base}
}

func certain(it intent.Intent) intent.Prediction {
	return intent.Prediction{PrimaryIntent: it, Confidence: 1.0}
}

func TestScoreBaseline(t *testing.T) {
	t.Parallel()

	// Unknown species, mid confidence, quiet pattern: 0.3 * 0.5 = 0.15.
	a := Score(profileWithRisk(species.DefaultBaseRisk), 0.5, pattern.DefaultPattern(), certain(intent.NormalFlight))

	assert.InDelta(t, 0.15, a.RiskScore, 1e-9)
	assert.Equal(t, AlertLow, a.AlertLevel)
	assert.Equal(t, ActionContinueNormal, a.RecommendedAction)
}

func TestScoreAlwaysBounded(t *testing.T) {
	t.Parallel()

	// Stack every modifier on a maximum-risk species; the pre-clamp value
	// exceeds 1.0 and the final clamp is the only safety net.
	p := pattern.Pattern{
		AlarmSignal:        true,
		FlockCommunication: true,
		Urgency:            pattern.UrgencyCritical,
	}
	a := Score(profileWithRisk(1.0), 1.0, p, certain(intent.LandingApproach))

	assert.InDelta(t, 1.0, a.RiskScore, 1e-9)
	assert.Equal(t, AlertCritical, a.AlertLevel)
}

func TestScoreNeverNegative(t *testing.T) {
	t.Parallel()

	a := Score(profileWithRisk(0), 0, pattern.DefaultPattern(), certain(intent.PredatorAvoidance))
	assert.GreaterOrEqual(t, a.RiskScore, 0.0)
}

func TestThresholdBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		risk       float64
		wantLevel  AlertLevel
		wantAction RecommendedAction
	}{
		{"exactly 0.8 stays HIGH", 0.8, AlertHigh, ActionDelayTakeoff},
		{"just above 0.8 is CRITICAL", 0.80001, AlertCritical, ActionRunwayClosure},
		{"exactly 0.6 stays MEDIUM", 0.6, AlertMedium, ActionIncreaseMonitoring},
		{"just above 0.6 is HIGH", 0.60001, AlertHigh, ActionDelayTakeoff},
		{"exactly 0.4 stays LOW", 0.4, AlertLow, ActionContinueNormal},
		{"just above 0.4 is MEDIUM", 0.40001, AlertMedium, ActionIncreaseMonitoring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			level, action := classify(tt.risk)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestIntentMultiplierInterpolation(t *testing.T) {
	t.Parallel()

	base := profileWithRisk(0.4)
	quiet := pattern.DefaultPattern()

	// Full confidence landing approach: 0.4*1.0 * 1.5 = 0.6.
	full := Score(base, 1.0, quiet, intent.Prediction{PrimaryIntent: intent.LandingApproach, Confidence: 1.0})
	assert.InDelta(t, 0.6, full.RiskScore, 1e-9)

	// Half confidence interpolates halfway toward the multiplier: *1.25.
	half := Score(base, 1.0, quiet, intent.Prediction{PrimaryIntent: intent.LandingApproach, Confidence: 0.5})
	assert.InDelta(t, 0.5, half.RiskScore, 1e-9)

	// Zero confidence leaves the score untouched.
	zero := Score(base, 1.0, quiet, intent.Prediction{PrimaryIntent: intent.LandingApproach, Confidence: 0.0})
	assert.InDelta(t, 0.4, zero.RiskScore, 1e-9)
}

func TestPredatorAvoidanceReducesRisk(t *testing.T) {
	t.Parallel()

	base := profileWithRisk(0.5)
	quiet := pattern.DefaultPattern()

	avoiding := Score(base, 1.0, quiet, certain(intent.PredatorAvoidance))
	normal := Score(base, 1.0, quiet, certain(intent.NormalFlight))

	assert.Less(t, avoiding.RiskScore, normal.RiskScore)
	assert.InDelta(t, 0.4, avoiding.RiskScore, 1e-9)
}

func TestUrgencyBonuses(t *testing.T) {
	t.Parallel()

	base := profileWithRisk(0.5)

	critical := Score(base, 1.0, pattern.Pattern{Urgency: pattern.UrgencyCritical}, certain(intent.NormalFlight))
	assert.InDelta(t, 0.8, critical.RiskScore, 1e-9)

	high := Score(base, 1.0, pattern.Pattern{Urgency: pattern.UrgencyHigh}, certain(intent.NormalFlight))
	assert.InDelta(t, 0.65, high.RiskScore, 1e-9)

	medium := Score(base, 1.0, pattern.Pattern{Urgency: pattern.UrgencyMedium}, certain(intent.NormalFlight))
	assert.InDelta(t, 0.5, medium.RiskScore, 1e-9)
}

func TestScoreBoundedAcrossInputGrid(t *testing.T) {
	t.Parallel()

	urgencies := []pattern.Urgency{pattern.UrgencyLow, pattern.UrgencyMedium, pattern.UrgencyHigh, pattern.UrgencyCritical}
	for _, baseRisk := range []float64{0, 0.3, 0.7, 0.95, 1.0} {
		for _, conf := range []float64{0, 0.5, 1.0} {
			for _, u := range urgencies {
				for _, it := range intent.Order {
					p := pattern.Pattern{
						AlarmSignal:        true,
						FlockCommunication: true,
						Urgency:            u,
					}
					a := Score(profileWithRisk(baseRisk), conf, p, certain(it))
					assert.GreaterOrEqual(t, a.RiskScore, 0.0)
					assert.LessOrEqual(t, a.RiskScore, 1.0)
				}
			}
		}
	}
}
