// Package pipeline orchestrates the per-detection analysis chain: pattern
// classification, intent prediction, risk scoring, and strategic response,
// in strict arrival order.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/analysis/risk"
	"github.com/strikewarn/strikewarn-go/internal/detection"
)

// Alert is the full analysis result for one detection event, the payload
// published to notification subscribers and served by the API.
type Alert struct {
	ID         uuid.UUID         `json:"id"`
	Zone       string            `json:"zone"`
	Event      detection.Event   `json:"event"`
	Pattern    pattern.Pattern   `json:"communication_analysis"`
	Prediction intent.Prediction `json:"behavioral_prediction"`
	Assessment risk.Assessment   `json:"risk_assessment"`
	Timestamp  time.Time         `json:"timestamp"`
}
