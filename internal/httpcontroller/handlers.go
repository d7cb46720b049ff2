package httpcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/strategy"
)

const defaultAlertLimit = 25

// detectionRequest is the /detections ingest payload posted by the
// classifier boundary.
type detectionRequest struct {
	ScientificName string  `json:"scientific_name"`
	CommonName     string  `json:"common_name"`
	Confidence     float64 `json:"confidence"`
	Features       struct {
		SpectralCentroidMean float64   `json:"spectral_centroid_mean"`
		Tempo                float64   `json:"tempo"`
		ZCRVariance          float64   `json:"zcr_variance"`
		MFCC                 []float64 `json:"mfcc,omitempty"`
		Valid                bool      `json:"valid"`
	} `json:"features"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// ingestDetection enqueues one detection for the pipeline worker. A full
// queue answers 503: dropping under backpressure is preferable to blocking
// the classifier.
func (s *Server) ingestDetection(c echo.Context) error {
	if s.Detections == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "ingest disabled"})
	}

	var req detectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ScientificName == "" || req.Confidence < 0 || req.Confidence > 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "scientific_name required, confidence must be in [0,1]"})
	}

	event := detection.NewEvent(
		detection.Species{ScientificName: req.ScientificName, CommonName: req.CommonName},
		req.Confidence,
		detection.AcousticFeatures{
			SpectralCentroidMean: req.Features.SpectralCentroidMean,
			Tempo:                req.Features.Tempo,
			ZCRVariance:          req.Features.ZCRVariance,
			MFCC:                 req.Features.MFCC,
			Valid:                req.Features.Valid,
		},
		req.Start, req.End,
	)

	select {
	case s.Detections <- event:
		return c.JSON(http.StatusAccepted, map[string]string{"id": event.ID.String()})
	default:
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "detection queue full"})
	}
}

// statusResponse is the /status payload.
type statusResponse struct {
	Zone      string                `json:"zone"`
	Engine    strategy.SystemStatus `json:"engine"`
	LastAlert any                   `json:"last_alert,omitempty"`
}

// getStatus reports engine and pipeline state. An uninitialized engine maps
// to 503, not 500: the process is up, the subsystem is not ready.
func (s *Server) getStatus(c echo.Context) error {
	engineStatus, err := s.Engine.Status()
	if err != nil {
		if errors.Is(err, strategy.ErrNotInitialized) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "not_initialized",
				"error":  err.Error(),
			})
		}
		return err
	}

	resp := statusResponse{
		Zone:   s.Settings.Monitor.Zone,
		Engine: engineStatus,
	}
	if s.Pipeline != nil {
		if alert := s.Pipeline.LastAlert(); alert != nil {
			resp.LastAlert = alert
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// getRecommendation returns the current recommendation, or 404 when no
// detection has produced one yet.
func (s *Server) getRecommendation(c echo.Context) error {
	rec := s.Engine.Current()
	if rec == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"status": "no_recommendation"})
	}
	return c.JSON(http.StatusOK, rec)
}

// executeAction triggers one manual action of the current recommendation.
// Stale IDs and invalid indices answer 409: the caller is acting on an
// outdated view and must refetch.
func (s *Server) executeAction(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid action index"})
	}

	if !s.Engine.ExecuteManualAction(c.Param("id"), index) {
		return c.JSON(http.StatusConflict, map[string]any{
			"executed": false,
			"error":    "recommendation stale or action not manually executable",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"executed": true})
}

// stopDeterrent halts any in-progress deterrent playback.
func (s *Server) stopDeterrent(c echo.Context) error {
	s.Engine.StopDeterrent()
	return c.JSON(http.StatusOK, map[string]string{"status": "stopped"})
}

// getRecentAlerts lists persisted alerts, most recent first.
func (s *Server) getRecentAlerts(c echo.Context) error {
	if s.DS == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "database disabled"})
	}

	limit := defaultAlertLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	alerts, err := s.DS.RecentAlerts(limit)
	if err != nil {
		s.logger.Error("failed to query recent alerts", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// acknowledgeRequest is the /alerts/:id/acknowledge payload.
type acknowledgeRequest struct {
	Responder string `json:"responder"`
}

// acknowledgeAlert marks a persisted alert as acknowledged.
func (s *Server) acknowledgeAlert(c echo.Context) error {
	if s.DS == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "database disabled"})
	}

	var req acknowledgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Responder == "" {
		req.Responder = "operator"
	}

	if err := s.DS.AcknowledgeAlert(c.Param("id"), req.Responder); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
}
