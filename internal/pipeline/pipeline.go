package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/strikewarn/strikewarn-go/internal/analysis/intent"
	"github.com/strikewarn/strikewarn-go/internal/analysis/pattern"
	"github.com/strikewarn/strikewarn-go/internal/analysis/risk"
	"github.com/strikewarn/strikewarn-go/internal/datastore"
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/history"
	"github.com/strikewarn/strikewarn-go/internal/logging"
	"github.com/strikewarn/strikewarn-go/internal/notification"
	"github.com/strikewarn/strikewarn-go/internal/observability/metrics"
	"github.com/strikewarn/strikewarn-go/internal/species"
	"github.com/strikewarn/strikewarn-go/internal/strategy"
)

// Publisher is the notification boundary alerts are emitted through.
type Publisher interface {
	Publish(n *notification.Notification) bool
}

// Config wires the pipeline's collaborators. Catalog and Engine are
// required; everything else is optional and nil-safe.
type Config struct {
	Zone        string
	Catalog     *species.Catalog
	Engine      *strategy.Engine
	HistorySize int
	Notifier    Publisher
	Store       datastore.Interface
	Metrics     *metrics.PipelineMetrics
}

// Pipeline consumes detection events from one source channel on a single
// worker goroutine. Single-writer by construction: events are classified and
// scored in arrival order because intent prediction depends on the most
// recent history entries, and out-of-order appends would corrupt the
// recurrence heuristics.
type Pipeline struct {
	zone     string
	catalog  *species.Catalog
	engine   *strategy.Engine
	hist     *history.Store[pattern.Pattern]
	notifier Publisher
	store    datastore.Interface
	metrics  *metrics.PipelineMetrics

	// suppressed is raised while a deterrent sound plays so the system does
	// not analyze and react to its own playback.
	suppressed atomic.Bool

	mu        sync.RWMutex
	lastAlert *Alert

	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// New creates a pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	size := cfg.HistorySize
	if size <= 0 {
		size = 100
	}
	return &Pipeline{
		zone:     cfg.Zone,
		catalog:  cfg.Catalog,
		engine:   cfg.Engine,
		hist:     history.New[pattern.Pattern](size),
		notifier: cfg.Notifier,
		store:    cfg.Store,
		metrics:  cfg.Metrics,
		logger:   logging.ForService("pipeline"),
	}
}

// DeterrentObserver returns the player status callback that gates analysis
// while a deterrent sound is playing.
func (p *Pipeline) DeterrentObserver() func(active bool) {
	return func(active bool) {
		p.suppressed.Store(active)
		p.logger.Debug("deterrent suppression toggled", "suppressed", active)
	}
}

// Start launches the worker consuming events until the channel closes or ctx
// is cancelled.
func (p *Pipeline) Start(ctx context.Context, events <-chan detection.Event) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				p.Process(event)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the worker and waits for it to exit.
func (p *Pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Process runs the full analysis chain for one detection event and returns
// the resulting alert, or nil when the event was suppressed. Not safe for
// concurrent calls; the worker goroutine is the only caller in production.
func (p *Pipeline) Process(event detection.Event) *Alert {
	if p.suppressed.Load() {
		p.logger.Debug("detection suppressed during deterrent playback",
			"species", event.Species.ScientificName)
		if p.metrics != nil {
			p.metrics.RecordSuppressed()
		}
		return nil
	}

	started := time.Now()
	profile := p.catalog.Lookup(event.Species.ScientificName)

	pat := pattern.Classify(event.Features, profile)
	pred := intent.Predict(pat, p.hist)
	assessment := risk.Score(profile, event.Confidence, pat, pred)
	p.engine.Recommend(event, pat, pred, assessment)

	// History is appended after prediction: the current pattern must not
	// reinforce its own recurrence heuristics.
	p.hist.Append(pat)

	alert := &Alert{
		ID:         uuid.New(),
		Zone:       p.zone,
		Event:      event,
		Pattern:    pat,
		Prediction: pred,
		Assessment: assessment,
		Timestamp:  time.Now(),
	}

	p.mu.Lock()
	p.lastAlert = alert
	p.mu.Unlock()

	p.publish(alert)
	p.persist(alert)

	if p.metrics != nil {
		p.metrics.RecordDetection(event.Species.ScientificName)
		p.metrics.RecordAlert(assessment.AlertLevel.String(), assessment.RiskScore)
		p.metrics.ObserveProcessingDuration(time.Since(started).Seconds())
	}

	p.logger.Info("detection processed",
		"species", event.Species.ScientificName,
		"confidence", event.Confidence,
		"risk_score", assessment.RiskScore,
		"alert_level", assessment.AlertLevel.String(),
		"primary_intent", string(pred.PrimaryIntent))

	return alert
}

// LastAlert returns the most recent alert, or nil before the first detection.
func (p *Pipeline) LastAlert() *Alert {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastAlert
}

// History exposes the pattern history store for read-side consumers.
func (p *Pipeline) History() *history.Store[pattern.Pattern] {
	return p.hist
}

// publish emits the alert notification, best-effort.
func (p *Pipeline) publish(alert *Alert) {
	if p.notifier == nil {
		return
	}
	n := notification.New(
		notification.TypeAlert,
		alertPriority(alert.Assessment.AlertLevel),
		"Bird strike risk: "+alert.Assessment.AlertLevel.String(),
		alert.Event.Species.CommonName+" detected in zone "+alert.Zone,
	).
		With("alert_id", alert.ID.String()).
		With("species", alert.Event.Species.ScientificName).
		With("risk_score", alert.Assessment.RiskScore).
		With("recommended_action", string(alert.Assessment.RecommendedAction))
	p.notifier.Publish(n)
}

// persist stores the detection and alert records, best-effort.
func (p *Pipeline) persist(alert *Alert) {
	if p.store == nil {
		return
	}

	if err := p.store.SaveDetection(&datastore.Detection{
		EventID:          alert.Event.ID.String(),
		ScientificName:   alert.Event.Species.ScientificName,
		CommonName:       alert.Event.Species.CommonName,
		Confidence:       alert.Event.Confidence,
		SpectralCentroid: alert.Event.Features.SpectralCentroidMean,
		Tempo:            alert.Event.Features.Tempo,
		ZCRVariance:      alert.Event.Features.ZCRVariance,
		StartTime:        alert.Event.Start,
		EndTime:          alert.Event.End,
	}); err != nil {
		p.logger.Error("failed to persist detection", "error", err)
	}

	if err := p.store.SaveAlert(&datastore.Alert{
		AlertID:             alert.ID.String(),
		EventID:             alert.Event.ID.String(),
		ScientificName:      alert.Event.Species.ScientificName,
		CommonName:          alert.Event.Species.CommonName,
		Confidence:          alert.Event.Confidence,
		RiskScore:           alert.Assessment.RiskScore,
		AlertLevel:          alert.Assessment.AlertLevel.String(),
		RecommendedAction:   string(alert.Assessment.RecommendedAction),
		CallType:            string(alert.Pattern.CallType),
		UrgencyLevel:        alert.Pattern.Urgency.String(),
		BehavioralContext:   alert.Pattern.BehavioralContext,
		PrimaryIntent:       string(alert.Prediction.PrimaryIntent),
		IntentConfidence:    alert.Prediction.Confidence,
		FlockCommunication:  alert.Pattern.FlockCommunication,
		TerritorialBehavior: alert.Pattern.TerritorialBehavior,
		AlarmSignal:         alert.Pattern.AlarmSignal,
	}); err != nil {
		p.logger.Error("failed to persist alert", "error", err)
	}
}

// alertPriority maps alert levels onto notification priorities.
func alertPriority(level risk.AlertLevel) notification.Priority {
	switch level {
	case risk.AlertCritical:
		return notification.PriorityCritical
	case risk.AlertHigh:
		return notification.PriorityHigh
	case risk.AlertMedium:
		return notification.PriorityMedium
	default:
		return notification.PriorityLow
	}
}
