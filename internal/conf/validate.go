package conf

import (
	"time"

	"github.com/strikewarn/strikewarn-go/internal/errors"
)

// ValidateSettings checks loaded settings for values the pipeline cannot
// operate with and normalizes recoverable ones.
func ValidateSettings(s *Settings) error {
	if s.Monitor.HistorySize <= 0 {
		return errors.Newf("monitor.historysize must be positive, got %d", s.Monitor.HistorySize).
			Component("conf").Category(errors.CategoryValidation).Build()
	}
	if s.Monitor.ResponseLogSize <= 0 {
		return errors.Newf("monitor.responselogsize must be positive, got %d", s.Monitor.ResponseLogSize).
			Component("conf").Category(errors.CategoryValidation).Build()
	}
	if s.Deterrent.Volume < 0 || s.Deterrent.Volume > 1 {
		return errors.Newf("deterrent.volume must be within [0,1], got %f", s.Deterrent.Volume).
			Component("conf").Category(errors.CategoryValidation).Build()
	}
	if s.Deterrent.StopTimeout <= 0 {
		s.Deterrent.StopTimeout = 2 * time.Second
	}
	if s.Monitor.QueueSize <= 0 {
		s.Monitor.QueueSize = 64
	}
	return nil
}
