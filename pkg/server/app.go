package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/mode"
	"SignalDeck/internal/usecase"
	pkgch "SignalDeck/pkg/clickhouse"
	"SignalDeck/pkg/config"
	xhttp "SignalDeck/pkg/http"
	xlogger "SignalDeck/pkg/logger"
)

// App encapsulates the application lifecycle: mode arbitration, the retry
// loop, the warm-up refresh and the HTTP server.
type App struct {
	cfg        *config.Config
	log        *xlogger.Logger
	controller *mode.Controller
	refresher  *usecase.Refresher
	handler    xhttp.Handler
	notifier   repository.Notifier
	chClient   *pkgch.Client

	httpServer *xhttp.Server
}

// New creates the App with all dependencies. chClient may be nil when the
// history archive is disabled.
func New(
	cfg *config.Config,
	log *xlogger.Logger,
	controller *mode.Controller,
	refresher *usecase.Refresher,
	handler xhttp.Handler,
	notifier repository.Notifier,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		controller: controller,
		refresher:  refresher,
		handler:    handler,
		notifier:   notifier,
		chClient:   chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Arbitrate once at startup, then keep retrying live promotion in the
	// background while demoted.
	m := a.controller.DetermineMode()
	a.log.Info("mode arbitrated", xlogger.String("mode", string(m)))
	if m == models.ModeDemo {
		a.log.Info("running with demo signals until credentials arrive")
	}
	go a.controller.Run(ctx)

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.log.Info("http server started", xlogger.Int("port", a.cfg.Server.Port))

	// Warm the dashboard before the first client polls.
	go a.refresher.Refresh(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the server and closes infrastructure clients.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", xlogger.Error(err))
	}

	if c, ok := a.notifier.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("notifier close error", xlogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", xlogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
