package deterrent

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no playback goroutines leak across the package tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
