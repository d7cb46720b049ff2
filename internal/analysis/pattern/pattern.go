// Package pattern classifies acoustic feature summaries into discrete
// communication patterns: call type, urgency, and behavioral flags.
package pattern

// CallType is the closed set of recognized call classifications.
type CallType string

const (
	CallUnknown       CallType = "unknown"
	CallHighFrequency CallType = "high_frequency_alert"
	CallTerritorial   CallType = "territorial_call"
	CallContact       CallType = "contact_call"
)

// EmotionalState is the inferred affective state behind a call.
type EmotionalState string

const (
	StateNeutral EmotionalState = "neutral"
	StateAlarmed EmotionalState = "alarmed"
)

// Urgency is an ordered severity scale. The numeric values define the order;
// urgency is only ever raised within a single classification pass.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

// String returns the wire representation of the urgency level.
func (u Urgency) String() string {
	switch u {
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	case UrgencyCritical:
		return "critical"
	default:
		return "low"
	}
}

// MarshalJSON encodes urgency as its string form.
func (u Urgency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// Behavioral context labels assigned by the classifier.
const (
	ContextNormal            = "normal"
	ContextGroupCoordination = "group_coordination"
	ContextImmediateThreat   = "immediate_threat_response"
	ContextPredatorWarning   = "predator_warning"
)

// Pattern is the derived, stateless classification of one detection event.
// Created fresh per event, appended to the rolling history, never mutated.
type Pattern struct {
	CallType            CallType       `json:"call_type"`
	EmotionalState      EmotionalState `json:"emotional_state"`
	BehavioralContext   string         `json:"behavioral_context"`
	Urgency             Urgency        `json:"urgency_level"`
	FlockCommunication  bool           `json:"flock_communication"`
	TerritorialBehavior bool           `json:"territorial_behavior"`
	AlarmSignal         bool           `json:"alarm_signal"`
}

// DefaultPattern is the safe fallback returned when feature extraction failed.
func DefaultPattern() Pattern {
	return Pattern{
		CallType:          CallUnknown,
		EmotionalState:    StateNeutral,
		BehavioralContext: ContextNormal,
		Urgency:           UrgencyLow,
	}
}

// raise escalates urgency to at least level, never lowering it.
func (p *Pattern) raise(level Urgency) {
	if level > p.Urgency {
		p.Urgency = level
	}
}
