// Package strategy turns risk assessments into operational response
// recommendations: prioritized action plans with automated execution for the
// safe subset and manual triggers for everything irreversible.
package strategy

import "time"

// ThreatLevel is the operational threat bucket. It is derived from the risk
// assessment but remains a separate scale: an alert level describes the
// detection, a threat level describes the required operational posture.
type ThreatLevel int

const (
	ThreatLow ThreatLevel = iota
	ThreatMedium
	ThreatHigh
	ThreatCritical
)

// String returns the wire representation of the threat level.
func (t ThreatLevel) String() string {
	switch t {
	case ThreatMedium:
		return "MEDIUM"
	case ThreatHigh:
		return "HIGH"
	case ThreatCritical:
		return "CRITICAL"
	default:
		return "LOW"
	}
}

// MarshalJSON encodes the threat level as its string form.
func (t ThreatLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ActionType is the closed set of operational response actions.
type ActionType string

const (
	ActionMonitor        ActionType = "MONITOR"
	ActionDelay          ActionType = "DELAY"
	ActionRedirect       ActionType = "REDIRECT"
	ActionEvacuate       ActionType = "EVACUATE"
	ActionSoundDeterrent ActionType = "SOUND_DETERRENT"
	ActionEmergencyStop  ActionType = "EMERGENCY_STOP"
)

// Action is one recommended operational step.
type Action struct {
	Type               ActionType `json:"action_type"`
	Priority           int        `json:"priority"`
	Description        string     `json:"description"`
	EstimatedDuration  int        `json:"estimated_duration"` // minutes
	ResourcesRequired  []string   `json:"resources_required"`
	SuccessProbability float64    `json:"success_probability"`
	RiskAssessment     string     `json:"risk_assessment"`
	Automated          bool       `json:"automated"`
}

// SuccessMetrics summarizes the quality of an action plan.
type SuccessMetrics struct {
	OverallSuccessProbability float64 `json:"overall_success_probability"`
	AutomationCoverage        float64 `json:"automation_coverage"`
	ResourceEfficiency        float64 `json:"resource_efficiency"`
	TimeEfficiency            float64 `json:"time_efficiency"`
}

// Recommendation is one complete next-action recommendation. Actions are
// ordered by ascending priority.
type Recommendation struct {
	ID                string         `json:"id"`
	Timestamp         time.Time      `json:"timestamp"`
	ThreatLevel       ThreatLevel    `json:"threat_level"`
	SituationAnalysis string         `json:"situation_analysis"`
	Actions           []Action       `json:"recommended_actions"`
	RiskFactors       []string       `json:"risk_factors"`
	SuccessMetrics    SuccessMetrics `json:"success_metrics"`
	ConfidenceScore   float64        `json:"confidence_score"`
	Reasoning         string         `json:"reasoning"`
}

// ResponseEntry is one executed-action record kept in the bounded response
// log for historical context and learning.
type ResponseEntry struct {
	Timestamp          time.Time   `json:"timestamp"`
	Action             ActionType  `json:"action"`
	Species            string      `json:"species"` // scientific name
	ThreatLevel        ThreatLevel `json:"threat_level"`
	SuccessProbability float64     `json:"success_probability"`
	Automated          bool        `json:"automated"`
}

// SystemStatus is the engine status snapshot served by the API.
type SystemStatus struct {
	SoundsLoaded         int       `json:"sounds_loaded"`
	ResponseLogEntries   int       `json:"response_log_entries"`
	ActiveRecommendation bool      `json:"active_recommendation"`
	DeterrentActive      bool      `json:"deterrent_active"`
	CurrentSound         string    `json:"current_sound,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
}
