package repository

import (
	"context"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/remote/wire"
)

// ScanRequest bounds a table scan against the remote store.
type ScanRequest struct {
	Table  string
	Limit  int
	Filter string
}

// TriggerRequest asks the remote compute engine for a manual scan.
type TriggerRequest struct {
	FunctionName string
	Payload      interface{}
}

// Ack is the opaque acknowledgement of a fire-and-forget invocation.
type Ack struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// RemoteStore is the single asynchronous operation contract against the
// remote data store and compute trigger. Implementations do not catch their
// own errors; fallback policy belongs to the signal pipeline.
type RemoteStore interface {
	ScanTable(ctx context.Context, req ScanRequest) ([]wire.Record, error)
	InvokeTrigger(ctx context.Context, req TriggerRequest) (Ack, error)
}

// Well-known credential keys.
const (
	CredAccessKey = "access_key"
	CredSecretKey = "secret_key"
)

// CredentialStore persists the two remote secrets. Values are written only
// by explicit user action; no validation beyond non-empty happens here.
type CredentialStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Renderer is the capability interface of the rendering collaborator. The
// core calls it, never implements dashboard layout itself.
type Renderer interface {
	Render(signals []models.Signal)
	RenderStatistics(stats models.Statistics)
	SetLoading(loading bool)
	RenderError(message string)
}

// Notification levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notifier delivers fire-and-forget, auto-dismissing user notifications.
type Notifier interface {
	Notify(message, level string)
}

// StatusSink receives connectivity indicator updates. The design treats
// connectivity as a single boolean: data, engine and notification channels
// always move together.
type StatusSink interface {
	SetConnected(connected bool)
}

// SignalArchive records live fetches for offline analysis.
type SignalArchive interface {
	ArchiveBatch(ctx context.Context, signals []models.Signal) error
	Close() error
}

// Metrics records pipeline observability counters.
type Metrics interface {
	RecordScan(outcome string, seconds float64)
	RecordFallback(reason string)
	RecordMode(mode models.Mode)
	RecordTrigger(path string)
}

// NopRenderer ignores all rendering calls; injected by callers that do not
// drive a dashboard.
type NopRenderer struct{}

func (NopRenderer) Render([]models.Signal)              {}
func (NopRenderer) RenderStatistics(models.Statistics)  {}
func (NopRenderer) SetLoading(bool)                     {}
func (NopRenderer) RenderError(string)                  {}

// NopNotifier drops notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}

// NopStatusSink ignores connectivity updates.
type NopStatusSink struct{}

func (NopStatusSink) SetConnected(bool) {}
