package task

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// Launched computations and watch goroutines must all exit by test end.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
