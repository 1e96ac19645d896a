package factory

import (
	"context"
	"time"

	"github.com/mcoot/competeinator/internal/dependencies/mocks"
	"github.com/mcoot/competeinator/internal/storage/memory"
	"github.com/mcoot/competeinator/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an in-memory App with a stepping mock clock
func NewTestApp() *TestApp {
	mockClock := mocks.NewSteppingClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)

	// In-memory storage cannot fail to report its IDs
	app, _ := NewWithStorage(context.Background(), memory.New(), mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
