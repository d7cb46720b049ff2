// Package detection defines the immutable input types produced by the species
// classifier boundary. The pipeline consumes these read-only and never
// re-derives them.
package detection

import (
	"time"

	"github.com/google/uuid"
)

// Species identifies a detected bird. ScientificName is the identity key used
// for catalog lookups and history matching.
type Species struct {
	ScientificName string `json:"scientific_name"`
	CommonName     string `json:"common_name"`
}

// AcousticFeatures is the feature summary extracted from the audio segment
// that triggered the detection. The MFCC vector is opaque to the pipeline.
// Valid is false when feature extraction failed; consumers must fall back to
// safe defaults rather than fail.
type AcousticFeatures struct {
	SpectralCentroidMean float64   `json:"spectral_centroid_mean"` // Hz
	Tempo                float64   `json:"tempo"`                  // BPM estimate of rhythmic pattern
	ZCRVariance          float64   `json:"zcr_variance"`           // zero-crossing-rate variance
	MFCC                 []float64 `json:"mfcc,omitempty"`
	Valid                bool      `json:"valid"`
}

// Event is one observed vocalization instance. Never mutated after creation.
type Event struct {
	ID         uuid.UUID        `json:"id"`
	Species    Species          `json:"species"`
	Confidence float64          `json:"confidence"` // 0.0-1.0 from the classifier
	Features   AcousticFeatures `json:"features"`
	Start      time.Time        `json:"start_time"`
	End        time.Time        `json:"end_time"`
}

// NewEvent creates a detection event with a fresh identity.
func NewEvent(species Species, confidence float64, features AcousticFeatures, start, end time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Species:    species,
		Confidence: confidence,
		Features:   features,
		Start:      start,
		End:        end,
	}
}
