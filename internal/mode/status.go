package mode

import "sync"

// Indicator labels shown on the dashboard.
const (
	StatusConnected = "LIVE"
	StatusDemo      = "DEMO"
)

// StatusBoard tracks the three connectivity indicators (data store,
// compute engine, notifications). It implements repository.StatusSink;
// connectivity is a single boolean, so the channels always agree.
type StatusBoard struct {
	mu        sync.RWMutex
	connected bool
}

// NewStatusBoard starts disconnected.
func NewStatusBoard() *StatusBoard { return &StatusBoard{} }

// SetConnected flips all three indicators at once.
func (b *StatusBoard) SetConnected(connected bool) {
	b.mu.Lock()
	b.connected = connected
	b.mu.Unlock()
}

// Snapshot returns the indicator labels keyed by channel.
func (b *StatusBoard) Snapshot() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	label := StatusDemo
	if b.connected {
		label = StatusConnected
	}
	return map[string]string{
		"data":          label,
		"engine":        label,
		"notifications": label,
	}
}
