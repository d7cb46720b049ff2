// Package datastore persists detections, alerts, and response logs. Writes
// are best-effort: the pipeline makes correct in-memory decisions without the
// store, and callers log failures rather than abort.
package datastore

import "time"

// Detection is one persisted classifier detection.
type Detection struct {
	ID               uint   `gorm:"primaryKey"`
	EventID          string `gorm:"index;size:36"` // pipeline event UUID
	ScientificName   string `gorm:"index"`
	CommonName       string
	Confidence       float64
	SpectralCentroid float64
	Tempo            float64
	ZCRVariance      float64
	StartTime        time.Time
	EndTime          time.Time
	CreatedAt        time.Time
}

// Alert is one persisted risk assessment with its analysis context.
type Alert struct {
	ID                  uint   `gorm:"primaryKey"`
	AlertID             string `gorm:"uniqueIndex;size:36"`
	EventID             string `gorm:"index;size:36"`
	ScientificName      string `gorm:"index"`
	CommonName          string
	Confidence          float64
	RiskScore           float64
	AlertLevel          string `gorm:"index"`
	RecommendedAction   string
	CallType            string
	UrgencyLevel        string
	BehavioralContext   string
	PrimaryIntent       string
	IntentConfidence    float64
	FlockCommunication  bool
	TerritorialBehavior bool
	AlarmSignal         bool
	Acknowledged        bool `gorm:"index"`
	AcknowledgedBy      string
	AcknowledgedAt      *time.Time
	Resolved            bool
	ResolvedAt          *time.Time
	CreatedAt           time.Time `gorm:"index"`
}

// ResponseLog is one automated or manual action execution record.
type ResponseLog struct {
	ID                 uint   `gorm:"primaryKey"`
	ScientificName     string `gorm:"index"`
	ThreatLevel        string
	ActionType         string
	Automated          bool
	SuccessProbability float64
	CreatedAt          time.Time `gorm:"index"`
}

// Recommendation is one archived strategic recommendation.
type Recommendation struct {
	ID               uint   `gorm:"primaryKey"`
	RecommendationID string `gorm:"uniqueIndex;size:36"`
	EventID          string `gorm:"index;size:36"`
	ThreatLevel      string
	ConfidenceScore  float64
	ActionsJSON      string `gorm:"type:text"` // serialized action list
	Reasoning        string `gorm:"type:text"`
	CreatedAt        time.Time
}
