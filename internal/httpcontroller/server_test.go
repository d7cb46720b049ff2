package httpcontroller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strikewarn/strikewarn-go/internal/conf"
	"github.com/strikewarn/strikewarn-go/internal/datastore"
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/deterrent"
	"github.com/strikewarn/strikewarn-go/internal/observability"
	"github.com/strikewarn/strikewarn-go/internal/pipeline"
	"github.com/strikewarn/strikewarn-go/internal/species"
	"github.com/strikewarn/strikewarn-go/internal/strategy"
)

func testSettings() *conf.Settings {
	s := &conf.Settings{}
	s.Monitor.Zone = "runway-1"
	s.HTTP.Port = "0"
	return s
}

func newTestServer(t *testing.T) (*Server, *strategy.Engine, *pipeline.Pipeline) {
	t.Helper()

	library := deterrent.NewMemoryLibrary(
		deterrent.Asset{ID: "hawk_screech", Duration: 50 * time.Millisecond},
	)
	player := deterrent.NewPlayer(library, deterrent.NullDevice{}, 500*time.Millisecond)
	t.Cleanup(player.Stop)

	engine := strategy.NewEngine(strategy.Config{Library: library, Player: player})
	catalog, err := species.LoadCatalog("")
	require.NoError(t, err)
	pl := pipeline.New(pipeline.Config{
		Zone:    "runway-1",
		Catalog: catalog,
		Engine:  engine,
	})

	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	return New(testSettings(), engine, pl, nil, metrics), engine, pl
}

func do(s *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echoContentType, echoJSONMime)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONMime    = "application/json"
)

func crowDetection() detection.Event {
	// Territorial calling at moderate confidence: risk lands in the HIGH
	// band (0.9 * 0.65 * 1.3 = 0.76).
	return detection.NewEvent(
		detection.Species{ScientificName: "Corvus splendens", CommonName: "House Crow"},
		0.65,
		detection.AcousticFeatures{SpectralCentroidMean: 2000, Tempo: 100, ZCRVariance: 0.001, Valid: true},
		time.Now(), time.Now(),
	)
}

func TestStatusNotInitialized(t *testing.T) {
	t.Parallel()

	s := New(testSettings(), nil, nil, nil, nil)
	rec := do(s, http.MethodGet, "/api/v1/status", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_initialized")
}

func TestStatusOK(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestServer(t)
	rec := do(s, http.MethodGet, "/api/v1/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"zone":"runway-1"`)
	assert.Contains(t, rec.Body.String(), `"sounds_loaded":1`)
}

func TestRecommendationLifecycle(t *testing.T) {
	t.Parallel()

	s, engine, pl := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/v1/recommendation", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_recommendation")

	require.NotNil(t, pl.Process(crowDetection()))

	rec = do(s, http.MethodGet, "/api/v1/recommendation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	current := engine.Current()
	require.NotNil(t, current)
	assert.Contains(t, rec.Body.String(), current.ID)
}

func TestExecuteAction(t *testing.T) {
	t.Parallel()

	s, engine, pl := newTestServer(t)
	require.NotNil(t, pl.Process(crowDetection()))
	current := engine.Current()
	require.NotNil(t, current)
	require.Equal(t, strategy.ThreatHigh, current.ThreatLevel)

	// Index 1 is the manual operational delay on high threats.
	rec := do(s, http.MethodPost, "/api/v1/recommendation/"+current.ID+"/actions/1/execute", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"executed":true`)

	// Stale recommendation ID conflicts.
	rec = do(s, http.MethodPost, "/api/v1/recommendation/stale-id/actions/1/execute", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Non-numeric index is a bad request.
	rec = do(s, http.MethodPost, "/api/v1/recommendation/"+current.ID+"/actions/first/execute", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManualDeterrentAndStop(t *testing.T) {
	t.Parallel()

	s, engine, pl := newTestServer(t)
	require.NotNil(t, pl.Process(crowDetection()))
	current := engine.Current()
	require.NotNil(t, current)

	// Index 0 is the sound deterrent on high threats, operator-gated.
	rec := do(s, http.MethodPost, "/api/v1/recommendation/"+current.ID+"/actions/0/execute", "")
	require.Equal(t, http.StatusOK, rec.Code)

	status, err := engine.Status()
	require.NoError(t, err)
	assert.True(t, status.DeterrentActive)

	rec = do(s, http.MethodPost, "/api/v1/deterrent/stop", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	status, err = engine.Status()
	require.NoError(t, err)
	assert.False(t, status.DeterrentActive)
}

func TestRecentAlerts(t *testing.T) {
	t.Parallel()

	ds, err := datastore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	require.NoError(t, ds.SaveAlert(&datastore.Alert{
		AlertID:        "a-1",
		ScientificName: "Corvus splendens",
		AlertLevel:     "HIGH",
	}))

	engine := strategy.NewEngine(strategy.Config{})
	s := New(testSettings(), engine, nil, ds, nil)

	rec := do(s, http.MethodGet, "/api/v1/alerts/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Corvus splendens")

	rec = do(s, http.MethodGet, "/api/v1/alerts/recent?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Acknowledge flow.
	rec = do(s, http.MethodPost, "/api/v1/alerts/a-1/acknowledge", `{"responder":"tower-1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(s, http.MethodPost, "/api/v1/alerts/a-1/acknowledge", `{"responder":"tower-2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentAlertsWithoutDatabase(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestServer(t)
	rec := do(s, http.MethodGet, "/api/v1/alerts/recent", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIngestDetection(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestServer(t)

	// Ingest disabled without a wired channel.
	rec := do(s, http.MethodPost, "/api/v1/detections", `{"scientific_name":"Corvus splendens","confidence":0.9}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ch := make(chan detection.Event, 1)
	s.Detections = ch

	rec = do(s, http.MethodPost, "/api/v1/detections",
		`{"scientific_name":"Corvus splendens","common_name":"House Crow","confidence":0.9,"features":{"spectral_centroid_mean":3500,"tempo":200,"zcr_variance":0.02,"valid":true}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	event := <-ch
	assert.Equal(t, "Corvus splendens", event.Species.ScientificName)
	assert.True(t, event.Features.Valid)

	// Queue full answers 503.
	ch <- event
	rec = do(s, http.MethodPost, "/api/v1/detections",
		`{"scientific_name":"Corvus splendens","confidence":0.9}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Validation failures.
	rec = do(s, http.MethodPost, "/api/v1/detections", `{"confidence":0.9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(s, http.MethodPost, "/api/v1/detections", `{"scientific_name":"x","confidence":1.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	s, _, pl := newTestServer(t)
	require.NotNil(t, pl.Process(crowDetection()))

	rec := do(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
