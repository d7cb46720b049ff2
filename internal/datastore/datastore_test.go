package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *DataStore {
	t.Helper()
	ds, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestSaveAndQueryAlerts(t *testing.T) {
	ds := openTestStore(t)

	for i, level := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		err := ds.SaveAlert(&Alert{
			AlertID:        "alert-" + level,
			EventID:        "event-" + level,
			ScientificName: "Corvus splendens",
			CommonName:     "House Crow",
			RiskScore:      0.2 * float64(i+1),
			AlertLevel:     level,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	recent, err := ds.RecentAlerts(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "CRITICAL", recent[0].AlertLevel, "most recent alert first")
	assert.Equal(t, "HIGH", recent[1].AlertLevel)
}

func TestAcknowledgeAlert(t *testing.T) {
	ds := openTestStore(t)

	require.NoError(t, ds.SaveAlert(&Alert{
		AlertID:    "ack-me",
		AlertLevel: "HIGH",
	}))

	require.NoError(t, ds.AcknowledgeAlert("ack-me", "tower-1"))

	var got Alert
	require.NoError(t, ds.DB.Where("alert_id = ?", "ack-me").First(&got).Error)
	assert.True(t, got.Acknowledged)
	assert.Equal(t, "tower-1", got.AcknowledgedBy)
	require.NotNil(t, got.AcknowledgedAt)

	// Second acknowledge and unknown IDs both report not found.
	assert.Error(t, ds.AcknowledgeAlert("ack-me", "tower-2"))
	assert.Error(t, ds.AcknowledgeAlert("no-such-alert", "tower-1"))
}

func TestSaveDetectionAndResponseLog(t *testing.T) {
	ds := openTestStore(t)

	require.NoError(t, ds.SaveDetection(&Detection{
		EventID:          "ev-1",
		ScientificName:   "Haliaeetus leucogaster",
		CommonName:       "White-bellied Sea Eagle",
		Confidence:       0.92,
		SpectralCentroid: 2100,
		Tempo:            90,
		ZCRVariance:      0.004,
	}))

	require.NoError(t, ds.SaveResponseLog(&ResponseLog{
		ScientificName:     "Haliaeetus leucogaster",
		ThreatLevel:        "HIGH",
		ActionType:         "SOUND_DETERRENT",
		Automated:          true,
		SuccessProbability: 0.75,
	}))

	var detections int64
	require.NoError(t, ds.DB.Model(&Detection{}).Count(&detections).Error)
	assert.Equal(t, int64(1), detections)

	var logs int64
	require.NoError(t, ds.DB.Model(&ResponseLog{}).Count(&logs).Error)
	assert.Equal(t, int64(1), logs)
}

func TestDuplicateAlertIDRejected(t *testing.T) {
	ds := openTestStore(t)

	require.NoError(t, ds.SaveAlert(&Alert{AlertID: "dup", AlertLevel: "LOW"}))
	assert.Error(t, ds.SaveAlert(&Alert{AlertID: "dup", AlertLevel: "LOW"}))
}
