package factory

import (
	"time"

	"github.com/mcoot/queensrush/internal/dependencies/mocks"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage/memory"
	"github.com/mcoot/queensrush/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Game IDs and bot moves share MockRandom so tests can queue both.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, mockRandom, model.DefaultBotStrategy, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
