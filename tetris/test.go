package tetris

import (
	"sync"
	"time"
)

// MockTicker is a manual Ticker with its own clock.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	now         time.Time
	mu          sync.Mutex
}

func newMockTicker() *MockTicker {
	return &MockTicker{
		ch:  make(chan time.Time),
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MockTicker) C() <-chan time.Time { return m.ch }

func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}

// Now is the clock of the ticker, only moved by Advance.
func (m *MockTicker) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and delivers a tick.
func (m *MockTicker) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	m.mu.Unlock()
	m.ch <- now
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestGame creates a game around a specific TestTetris and returns it
// with the manual ticker driving it.
func NewTestGame(t *Tetris) (*Game, *MockTicker) {
	ticker := newMockTicker()
	return newGame(t, ticker, ticker.Now, nil), ticker
}

// NewTestTetris creates a Tetris on a default board that always draws shape.
// The first tetromino is already spawned at the top center.
func NewTestTetris(shape Shape) *Tetris {
	t := New(nil)
	t.draw = func() Shape { return shape }
	t.Restart()
	return t
}
