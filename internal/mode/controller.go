// Package mode owns the DEMO/LIVE arbitration for the dashboard.
package mode

import (
	"context"
	"sync"
	"time"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/remote"
	"SignalDeck/pkg/logger"
)

// StoreFactory builds the remote store adapter from the stored credentials.
// A nil factory means the remote client is not wired in at all (no endpoint
// configured), the analogue of the client library failing to load.
type StoreFactory func(creds remote.Credentials) (repository.RemoteStore, error)

// Controller is a small state machine, UNINITIALIZED -> DEMO | LIVE. It is
// the explicit context object holding the current mode and the adapter
// handle; the pipeline and the statistics aggregator read both from here
// instead of ambient globals.
type Controller struct {
	mu    sync.RWMutex
	mode  models.Mode
	store repository.RemoteStore

	creds   repository.CredentialStore
	factory StoreFactory
	status  repository.StatusSink
	metrics repository.Metrics
	log     *logger.Logger

	retryInterval time.Duration
}

// Option configures the Controller.
type Option func(*Controller)

// WithStatusSink routes connectivity indicator updates.
func WithStatusSink(s repository.StatusSink) Option {
	return func(c *Controller) { c.status = s }
}

// WithMetrics records mode transitions.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithRetryInterval overrides the promotion retry interval.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// NewController creates an uninitialized controller.
func NewController(creds repository.CredentialStore, factory StoreFactory, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		mode:          models.ModeUninitialized,
		creds:         creds,
		factory:       factory,
		status:        repository.NopStatusSink{},
		log:           log,
		retryInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

// DetermineMode evaluates the transition rule and returns the resulting
// mode. Missing client wiring or credentials demote to DEMO without any
// remote call; an adapter construction error demotes to DEMO and is logged,
// never surfaced as fatal.
func (c *Controller) DetermineMode() models.Mode {
	creds, ok := c.credentials()
	if c.factory == nil || !ok {
		if c.factory == nil {
			c.log.Debug("mode: remote client not configured, using demo")
		} else {
			c.log.Info("mode: credentials not configured, using demo")
		}
		return c.transition(models.ModeDemo, nil)
	}

	store, err := c.factory(creds)
	if err != nil {
		c.log.Error("mode: remote initialization failed", logger.Error(err))
		return c.transition(models.ModeDemo, nil)
	}

	c.log.Info("mode: remote client initialized, going live")
	return c.transition(models.ModeLive, store)
}

// Mode returns the current mode.
func (c *Controller) Mode() models.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Store returns the adapter handle, nil unless LIVE.
func (c *Controller) Store() repository.RemoteStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// Run re-evaluates the mode periodically, but only while demoted with
// credentials present: a prior attempt failed or the endpoint came up late.
// It never re-invokes when the user has configured nothing. The loop runs
// until ctx is cancelled; there is no other cancellation token.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.Mode() != models.ModeDemo {
				continue
			}
			if _, ok := c.credentials(); !ok {
				continue
			}
			c.log.Debug("mode: retrying live promotion")
			c.DetermineMode()
		}
	}
}

func (c *Controller) credentials() (remote.Credentials, bool) {
	access, okA := c.creds.Get(repository.CredAccessKey)
	secret, okS := c.creds.Get(repository.CredSecretKey)
	if !okA || !okS {
		return remote.Credentials{}, false
	}
	return remote.Credentials{AccessKey: access, SecretKey: secret}, true
}

func (c *Controller) transition(m models.Mode, store repository.RemoteStore) models.Mode {
	c.mu.Lock()
	c.mode = m
	c.store = store
	c.mu.Unlock()

	// Connectivity is one boolean; all three indicator channels follow it.
	c.status.SetConnected(m == models.ModeLive)
	if c.metrics != nil {
		c.metrics.RecordMode(m)
	}
	return m
}
