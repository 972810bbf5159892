// Package health provides health check and monitoring for the roomcare service.
//
// This package implements:
//   - Application status tracking for the /health endpoint
//   - Uptime monitoring
//   - Last-dispatch status reporting
package health

import (
	"sync"
	"time"
)

// Status represents the application health status.
//
// This is returned by the /health endpoint for monitoring tools.
type Status struct {
	Status             string `json:"status"`
	Uptime             string `json:"uptime"`
	LastDispatchTime   string `json:"last_dispatch_time"`
	LastDispatchStatus string `json:"last_dispatch_status"`
}

// Monitor tracks application health metrics.
//
// Thread-safety:
//   - All fields are protected by RWMutex
//   - Safe for concurrent updates from request handlers
type Monitor struct {
	startTime          time.Time
	lastDispatchTime   time.Time
	lastDispatchStatus string
	mu                 sync.RWMutex
}

// NewMonitor creates a new health monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		startTime:          time.Now(),
		lastDispatchStatus: "no submissions yet",
	}
}

// UpdateDispatchStatus records the outcome of the latest submission.
//
// This should be called after every dispatch:
//   - Delivered: UpdateDispatchStatus("delivered")
//   - All sinks failed: UpdateDispatchStatus("all sinks failed")
func (m *Monitor) UpdateDispatchStatus(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDispatchTime = time.Now()
	m.lastDispatchStatus = status
}

// GetStatus returns the current health status.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := Status{
		Status:             "healthy",
		Uptime:             time.Since(m.startTime).String(),
		LastDispatchStatus: m.lastDispatchStatus,
	}
	if !m.lastDispatchTime.IsZero() {
		status.LastDispatchTime = m.lastDispatchTime.Format("2006-01-02 15:04:05")
	}
	return status
}
