package pattern

import (
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/species"
)

// Thresholds for feature-based classification, carried over from field
// calibration of the acoustic frontend.
const (
	highFrequencyCentroidHz = 3000.0
	territorialCentroidHz   = 1500.0
	flockTempoBPM           = 150.0
	rapidSuccessionTempoBPM = 180.0
	alarmZCRVariance        = 0.01
	pitchVariationZCRVar    = 0.015
)

// Classify derives a communication pattern from an acoustic feature summary
// and the species profile. Pure function: same inputs always produce the same
// pattern, and urgency is only ever raised within a pass.
//
// Invalid features (extraction failure upstream) yield the all-default
// pattern rather than an error so the monitoring loop survives noisy input.
func Classify(features detection.AcousticFeatures, profile species.Profile) Pattern {
	p := DefaultPattern()
	if !features.Valid {
		return p
	}

	// Call type from spectral centroid.
	switch {
	case features.SpectralCentroidMean > highFrequencyCentroidHz:
		p.CallType = CallHighFrequency
		p.raise(UrgencyHigh)
	case features.SpectralCentroidMean > territorialCentroidHz:
		p.CallType = CallTerritorial
		p.TerritorialBehavior = true
	default:
		p.CallType = CallContact
	}

	// Rhythmic tempo indicates flock coordination.
	if features.Tempo > flockTempoBPM {
		p.FlockCommunication = true
		p.BehavioralContext = ContextGroupCoordination
	}

	// High zero-crossing-rate variance indicates alarm calls.
	if features.ZCRVariance > alarmZCRVariance {
		p.AlarmSignal = true
		p.EmotionalState = StateAlarmed
		p.raise(UrgencyHigh)
	}

	// Species-specific alarm pattern overrides.
	if profile.HasAlarmPattern("rapid_succession") && features.Tempo > rapidSuccessionTempoBPM {
		p.BehavioralContext = ContextImmediateThreat
		p.raise(UrgencyCritical)
	}
	if profile.HasAlarmPattern("pitch_variation") && features.ZCRVariance > pitchVariationZCRVar {
		// The critical classification above takes precedence.
		if p.Urgency < UrgencyCritical {
			p.BehavioralContext = ContextPredatorWarning
			p.raise(UrgencyHigh)
		}
	}

	return p
}
