package strategy

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/analysis/risk"
	"github.com/strikewarn/strikewarn-go/internal/datastore"
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/deterrent"
	"github.com/strikewarn/strikewarn-go/internal/errors"
	"github.com/strikewarn/strikewarn-go/internal/history"
	"github.com/strikewarn/strikewarn-go/internal/logging"
	"github.com/strikewarn/strikewarn-go/internal/notification"
	"github.com/strikewarn/strikewarn-go/internal/observability/metrics"
)

// ErrNotInitialized tags status requests against an engine that was never
// constructed, so the API layer can answer 503 instead of 500.
var ErrNotInitialized = errors.Newf("strategy engine not initialized").
	Component("strategy").
	Category(errors.CategoryState).
	Build()

// Deterrent volume by threat severity, applied on manual sound triggers.
const (
	deterrentVolumeHigh   = 0.9
	deterrentVolumeNormal = 0.7
)

// Publisher is the notification boundary the engine emits through.
type Publisher interface {
	Publish(n *notification.Notification) bool
}

// Config wires the engine's collaborators. Notifier, Store, and Metrics are
// optional; a nil collaborator simply disables that side effect.
type Config struct {
	Library         deterrent.Library
	Player          *deterrent.Player
	ResponseLogSize int
	Notifier        Publisher
	Store           datastore.Interface
	Metrics         *metrics.DeterrentMetrics
}

// detectionContext carries the inputs the current recommendation was built
// from, needed again when a manual deterrent trigger fires.
type detectionContext struct {
	species  detection.Species
	behavior intent.Intent
	threat   ThreatLevel
}

// Engine generates next-action recommendations and executes the automated
// subset. Exactly one recommendation is current at a time; manual execution
// is only honored against it.
type Engine struct {
	mu          sync.Mutex
	library     deterrent.Library
	player      *deterrent.Player
	responseLog *history.Store[ResponseEntry]
	notifier    Publisher
	store       datastore.Interface
	metrics     *metrics.DeterrentMetrics
	current     *Recommendation
	currentCtx  detectionContext
	now         func() time.Time
	logger      *slog.Logger
}

// NewEngine creates a strategy engine from the given configuration.
func NewEngine(cfg Config) *Engine {
	size := cfg.ResponseLogSize
	if size <= 0 {
		size = 1000
	}
	return &Engine{
		library:     cfg.Library,
		player:      cfg.Player,
		responseLog: history.New[ResponseEntry](size),
		notifier:    cfg.Notifier,
		store:       cfg.Store,
		metrics:     cfg.Metrics,
		now:         time.Now,
		logger:      logging.ForService("strategy"),
	}
}

// Recommend builds the next-action recommendation for one assessed detection,
// installs it as the current recommendation, and executes the automated
// actions. Sound deterrents are never auto-executed: blasting predator calls
// is operator-gated regardless of what the plan says.
func (e *Engine) Recommend(event detection.Event, p pattern.Pattern, pred intent.Prediction, assessment risk.Assessment) *Recommendation {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	incidents, recurrence := historicalContext(e.responseLog, event.Species.ScientificName)
	analysis := situationAnalysis{
		threat:            assessThreat(assessment, p),
		urgencyScore:      urgencyScore(assessment, p),
		complexityFactors: complexityFactors(p, pred),
		timeOfDay:         timeOfDay(now),
		migrationSeason:   isMigrationSeason(now),
		similarIncidents:  incidents,
		recurrence:        recurrence,
	}

	actions := actionsFor(analysis.threat, event.Species.CommonName, p.FlockCommunication)

	rec := &Recommendation{
		ID:                uuid.New().String(),
		Timestamp:         now,
		ThreatLevel:       analysis.threat,
		SituationAnalysis: formatAnalysis(analysis),
		Actions:           actions,
		RiskFactors:       analysis.complexityFactors,
		SuccessMetrics:    successMetrics(actions),
		ConfidenceScore:   confidenceScore(analysis, actions),
		Reasoning:         reasoning(event.Species.CommonName, analysis, actions),
	}

	e.current = rec
	e.currentCtx = detectionContext{
		species:  event.Species,
		behavior: pred.PrimaryIntent,
		threat:   analysis.threat,
	}

	e.executeAutomatedLocked(rec)
	e.persistRecommendation(rec, event.ID.String())

	e.logger.Info("recommendation generated",
		"id", rec.ID,
		"threat_level", rec.ThreatLevel.String(),
		"actions", len(rec.Actions),
		"confidence", rec.ConfidenceScore)

	return rec
}

// executeAutomatedLocked runs the automated actions of a fresh
// recommendation. Requires e.mu held.
func (e *Engine) executeAutomatedLocked(rec *Recommendation) {
	for _, action := range rec.Actions {
		if !action.Automated || action.Type == ActionSoundDeterrent {
			continue
		}

		switch action.Type {
		case ActionMonitor:
			e.logger.Info("enhanced monitoring activated", "description", action.Description)
		case ActionEmergencyStop:
			e.logger.Error("EMERGENCY STOP ACTIVATED", "description", action.Description)
			e.notify(notification.New(notification.TypeSystem, notification.PriorityCritical,
				"Emergency stop", action.Description))
		default:
			e.logger.Info("automated action executed",
				"action", string(action.Type),
				"description", action.Description)
		}

		e.recordExecutionLocked(action, "automated")
	}
}

// ExecuteManualAction executes one action of the current recommendation by
// index. Returns false, never panics, when the recommendation ID is stale,
// the index is out of range, or the action is automated and not a deterrent.
// A manual trigger on a sound deterrent selects the most effective predator
// sound and starts looped playback, preempting anything already playing.
func (e *Engine) ExecuteManualAction(recommendationID string, index int) bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.current.ID != recommendationID {
		return false
	}
	if index < 0 || index >= len(e.current.Actions) {
		return false
	}

	action := e.current.Actions[index]

	if action.Type == ActionSoundDeterrent {
		if !e.engageDeterrentLocked() {
			return false
		}
		e.recordExecutionLocked(action, "manual")
		return true
	}

	if action.Automated {
		return false
	}

	e.logger.Info("manual action executed",
		"action", string(action.Type),
		"description", action.Description)
	e.recordExecutionLocked(action, "manual")
	return true
}

// engageDeterrentLocked selects and plays a predator sound for the current
// detection context. Requires e.mu held.
func (e *Engine) engageDeterrentLocked() bool {
	if e.player == nil || e.library == nil {
		e.logger.Warn("sound deterrent requested but no player configured")
		return false
	}

	sound, err := deterrent.SelectSound(e.library, e.currentCtx.species.CommonName, string(e.currentCtx.behavior))
	if err != nil {
		e.logger.Error("sound selection failed", "error", err)
		return false
	}

	volume := deterrentVolumeNormal
	if e.currentCtx.threat >= ThreatHigh {
		volume = deterrentVolumeHigh
	}

	if !e.player.Play(sound, volume) {
		return false
	}

	if e.metrics != nil {
		e.metrics.RecordPlayback(sound)
	}
	e.notify(notification.New(notification.TypeDeterrent, notification.PriorityHigh,
		"Deterrent engaged", "Predator sound deterrent started").
		With("sound", sound).
		With("species", e.currentCtx.species.CommonName))

	return true
}

// StopDeterrent halts any in-progress deterrent playback.
func (e *Engine) StopDeterrent() {
	if e == nil || e.player == nil {
		return
	}
	e.player.Stop()
}

// recordExecutionLocked appends one execution to the bounded response log and
// mirrors it to the optional store and metrics. Requires e.mu held.
func (e *Engine) recordExecutionLocked(action Action, trigger string) {
	entry := ResponseEntry{
		Timestamp:          e.now(),
		Action:             action.Type,
		Species:            e.currentCtx.species.ScientificName,
		ThreatLevel:        e.currentCtx.threat,
		SuccessProbability: action.SuccessProbability,
		Automated:          trigger == "automated",
	}
	e.responseLog.Append(entry)

	if e.metrics != nil {
		e.metrics.RecordAction(string(action.Type), trigger)
	}
	if e.store != nil {
		if err := e.store.SaveResponseLog(&datastore.ResponseLog{
			ScientificName:     entry.Species,
			ThreatLevel:        entry.ThreatLevel.String(),
			ActionType:         string(entry.Action),
			Automated:          entry.Automated,
			SuccessProbability: entry.SuccessProbability,
		}); err != nil {
			e.logger.Error("failed to persist response log entry", "error", err)
		}
	}
}

// persistRecommendation archives the recommendation, best-effort.
func (e *Engine) persistRecommendation(rec *Recommendation, eventID string) {
	if e.store == nil {
		return
	}
	actionsJSON, err := json.Marshal(rec.Actions)
	if err != nil {
		e.logger.Error("failed to serialize recommendation actions", "error", err)
		return
	}
	if err := e.store.SaveRecommendation(&datastore.Recommendation{
		RecommendationID: rec.ID,
		EventID:          eventID,
		ThreatLevel:      rec.ThreatLevel.String(),
		ConfidenceScore:  rec.ConfidenceScore,
		ActionsJSON:      string(actionsJSON),
		Reasoning:        rec.Reasoning,
	}); err != nil {
		e.logger.Error("failed to persist recommendation", "error", err)
	}
}

// notify publishes a notification when a notifier is wired.
func (e *Engine) notify(n *notification.Notification) {
	if e.notifier != nil {
		e.notifier.Publish(n)
	}
}

// Current returns the current recommendation, or nil when none was generated
// yet.
func (e *Engine) Current() *Recommendation {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// ResponseLog returns up to limit response entries, most recent last.
func (e *Engine) ResponseLog(limit int) []ResponseEntry {
	if e == nil {
		return nil
	}
	return e.responseLog.Recent(limit)
}

// Status returns the engine status snapshot. A nil engine returns
// ErrNotInitialized instead of panicking.
func (e *Engine) Status() (SystemStatus, error) {
	if e == nil {
		return SystemStatus{}, ErrNotInitialized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	status := SystemStatus{
		ResponseLogEntries:   e.responseLog.Len(),
		ActiveRecommendation: e.current != nil,
		Timestamp:            e.now(),
	}
	if e.library != nil {
		status.SoundsLoaded = len(e.library.ListIDs())
	}
	if e.player != nil {
		ps := e.player.Status()
		status.DeterrentActive = ps.Active
		status.CurrentSound = ps.Sound
	}
	return status, nil
}
