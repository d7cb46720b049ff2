package datastore

import (
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/strikewarn/strikewarn-go/internal/errors"
	"github.com/strikewarn/strikewarn-go/internal/logging"
)

// Interface abstracts the persistence store for the pipeline and API layer.
type Interface interface {
	SaveDetection(d *Detection) error
	SaveAlert(a *Alert) error
	SaveResponseLog(r *ResponseLog) error
	SaveRecommendation(r *Recommendation) error
	RecentAlerts(limit int) ([]Alert, error)
	AcknowledgeAlert(alertID, responder string) error
	Close() error
}

// DataStore implements Interface over a gorm database.
type DataStore struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// Open opens the SQLite database at path and migrates the schema.
func Open(path string) (*DataStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", path).
			Build()
	}

	if err := db.AutoMigrate(&Detection{}, &Alert{}, &ResponseLog{}, &Recommendation{}); err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	return &DataStore{
		DB:     db,
		logger: logging.ForService("datastore"),
	}, nil
}

// SaveDetection persists one detection record.
func (ds *DataStore) SaveDetection(d *Detection) error {
	return ds.wrap(ds.DB.Create(d).Error, "save detection")
}

// SaveAlert persists one alert record.
func (ds *DataStore) SaveAlert(a *Alert) error {
	return ds.wrap(ds.DB.Create(a).Error, "save alert")
}

// SaveResponseLog persists one action execution record.
func (ds *DataStore) SaveResponseLog(r *ResponseLog) error {
	return ds.wrap(ds.DB.Create(r).Error, "save response log")
}

// SaveRecommendation persists one recommendation archive record.
func (ds *DataStore) SaveRecommendation(r *Recommendation) error {
	return ds.wrap(ds.DB.Create(r).Error, "save recommendation")
}

// RecentAlerts returns up to limit alerts, most recent first.
func (ds *DataStore) RecentAlerts(limit int) ([]Alert, error) {
	var alerts []Alert
	err := ds.DB.Order("created_at desc").Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, ds.wrap(err, "query recent alerts")
	}
	return alerts, nil
}

// AcknowledgeAlert marks the alert as acknowledged by responder. Unknown
// alert IDs return a not-found error.
func (ds *DataStore) AcknowledgeAlert(alertID, responder string) error {
	res := ds.DB.Model(&Alert{}).
		Where("alert_id = ? AND acknowledged = ?", alertID, false).
		Updates(map[string]any{
			"acknowledged":    true,
			"acknowledged_by": responder,
			"acknowledged_at": time.Now(),
		})
	if res.Error != nil {
		return ds.wrap(res.Error, "acknowledge alert")
	}
	if res.RowsAffected == 0 {
		return errors.Newf("alert %s not found or already acknowledged", alertID).
			Component("datastore").
			Category(errors.CategoryNotFound).
			Build()
	}
	return nil
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (ds *DataStore) wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", op).
		Build()
}
