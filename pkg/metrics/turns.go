package metrics

import (
	"sync"
	"time"
)

// TurnMetrics tracks what the protocol loop has processed.
type TurnMetrics struct {
	mu sync.RWMutex

	// Turn outcomes
	Requests       int64
	Notifications  int64
	ParseErrors    int64
	UnknownMethods int64

	// Time spent inside handlers
	ProcessingTime time.Duration
}

// NewTurnMetrics creates a new TurnMetrics instance
func NewTurnMetrics() *TurnMetrics {
	return &TurnMetrics{}
}

// RecordRequest records a request turn. Unknown methods count separately
// so a confused parent shows up in the numbers.
func (m *TurnMetrics) RecordRequest(known bool, processingTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests++
	if !known {
		m.UnknownMethods++
	}
	m.ProcessingTime += processingTime
}

// RecordNotification records an inbound notification turn
func (m *TurnMetrics) RecordNotification() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications++
}

// RecordParseError records a line that could not be decoded
func (m *TurnMetrics) RecordParseError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParseErrors++
}

// GetMetrics returns a snapshot of the current metrics
func (m *TurnMetrics) GetMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"requests":        m.Requests,
		"notifications":   m.Notifications,
		"parse_errors":    m.ParseErrors,
		"unknown_methods": m.UnknownMethods,
		"processing_time": m.ProcessingTime.Seconds(),
	}
}
