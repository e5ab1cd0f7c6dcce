package di

import (
	"context"
	"fmt"
	"time"

	"SignalDeck/internal/credentials"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/handler/api"
	"SignalDeck/internal/handler/push"
	"SignalDeck/internal/mode"
	"SignalDeck/internal/notify"
	"SignalDeck/internal/remote"
	internalrepo "SignalDeck/internal/repository"
	icache "SignalDeck/internal/service/cache"
	"SignalDeck/internal/service/metrics"
	"SignalDeck/internal/usecase"
	pkgch "SignalDeck/pkg/clickhouse"
	"SignalDeck/pkg/config"
	pkgkafka "SignalDeck/pkg/kafka"
	xlogger "SignalDeck/pkg/logger"
	"SignalDeck/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStatusBoard creates the connectivity indicator board.
func ProvideStatusBoard() *mode.StatusBoard {
	return mode.NewStatusBoard()
}

// ProvideCredentialStore opens the file-backed credential store.
func ProvideCredentialStore(cfg *config.Config) (repository.CredentialStore, error) {
	store, err := credentials.NewFileStore(cfg.Credentials.Path)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return store, nil
}

// ProvideStoreFactory builds the remote adapter factory. Without an endpoint
// the factory is nil and the controller pins DEMO without attempting
// anything.
func ProvideStoreFactory(cfg *config.Config) mode.StoreFactory {
	if cfg.Remote.Endpoint == "" {
		return nil
	}
	endpoint := cfg.Remote.Endpoint
	timeout := cfg.Remote.RequestTimeout
	return func(creds remote.Credentials) (repository.RemoteStore, error) {
		return remote.NewClient(endpoint, creds, timeout)
	}
}

// ProvideController creates the mode controller.
func ProvideController(
	cfg *config.Config,
	creds repository.CredentialStore,
	factory mode.StoreFactory,
	board *mode.StatusBoard,
	m repository.Metrics,
	log *xlogger.Logger,
) *mode.Controller {
	return mode.NewController(creds, factory, log,
		mode.WithStatusSink(board),
		mode.WithMetrics(m),
		mode.WithRetryInterval(cfg.Remote.RetryInterval),
	)
}

// ProvideNotifier selects the notification transport.
func ProvideNotifier(cfg *config.Config, log *xlogger.Logger) (repository.Notifier, error) {
	if cfg.Notify.Transport != "kafka" {
		return notify.NewLogNotifier(log), nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Notify.Brokers),
		pkgkafka.WithAsync(true),
		pkgkafka.WithWriteTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return notify.NewKafkaNotifier(producer, cfg.Notify.Topic, log), nil
}

// ProvidePipeline creates the signal fetch pipeline.
func ProvidePipeline(
	cfg *config.Config,
	controller *mode.Controller,
	notifier repository.Notifier,
	m repository.Metrics,
	log *xlogger.Logger,
) *usecase.SignalPipeline {
	return usecase.NewSignalPipeline(controller, usecase.PipelineConfig{
		Table:            cfg.Remote.Table,
		ScanLimit:        cfg.Remote.ScanLimit,
		ScanFilter:       cfg.Remote.ScanFilter,
		FunctionName:     cfg.Remote.FunctionName,
		RecencyWindow:    cfg.Pipeline.RecencyWindow,
		SimulatedLatency: cfg.Pipeline.SimulatedLatency,
		DemoRefetchDelay: cfg.Pipeline.DemoRefetchDelay,
		LiveRefetchDelay: cfg.Pipeline.LiveRefetchDelay,
	}, log,
		usecase.WithNotifier(notifier),
		usecase.WithPipelineMetrics(m),
	)
}

// ProvideStatsAggregator creates the statistics aggregator.
func ProvideStatsAggregator(cfg *config.Config, controller *mode.Controller, log *xlogger.Logger) *usecase.StatsAggregator {
	return usecase.NewStatsAggregator(controller, cfg.Remote.Table, cfg.Remote.ScanLimit, log)
}

// ProvideHub creates the WebSocket push hub.
func ProvideHub(log *xlogger.Logger) *push.Hub {
	return push.NewHub(log)
}

// ProvideClickHouseClient creates the archive database client, or nil when
// the archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Archive.Host),
		pkgch.WithPort(cfg.Archive.Port),
		pkgch.WithDatabase(cfg.Archive.Database),
		pkgch.WithCredentials(cfg.Archive.User, cfg.Archive.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.Archive.DialTimeout, cfg.Archive.ReadTimeout, cfg.Archive.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.Archive.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.Archive.Database, archiveTable(cfg))); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideSignalArchive creates the history archive, or nil when disabled.
func ProvideSignalArchive(client *pkgch.Client, cfg *config.Config) repository.SignalArchive {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(client.DB(), archiveTable(cfg))
}

// ProvideRefresher creates the refresh cycle and closes the loop back into
// the pipeline for delayed re-fetches after manual triggers.
func ProvideRefresher(
	pipeline *usecase.SignalPipeline,
	stats *usecase.StatsAggregator,
	hub *push.Hub,
	archive repository.SignalArchive,
	log *xlogger.Logger,
) *usecase.Refresher {
	r := usecase.NewRefresher(pipeline, stats, hub, archive, log)
	pipeline.SetRefetch(func() { r.Refresh(context.Background()) })
	return r
}

// ProvideCache selects the response cache backend, or nil when disabled.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Redis {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDashboardHandler creates the HTTP surface.
func ProvideDashboardHandler(
	cfg *config.Config,
	log *xlogger.Logger,
	refresher *usecase.Refresher,
	pipeline *usecase.SignalPipeline,
	controller *mode.Controller,
	board *mode.StatusBoard,
	creds repository.CredentialStore,
	notifier repository.Notifier,
	hub *push.Hub,
	cache icache.BytesCache,
) *api.DashboardHandler {
	h := api.NewDashboardHandler(log, refresher, pipeline, controller, board, creds, notifier, hub)
	if cache != nil {
		h.SetCache(cache, cfg.Cache.TTL)
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *xlogger.Logger,
	controller *mode.Controller,
	refresher *usecase.Refresher,
	handler *api.DashboardHandler,
	notifier repository.Notifier,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, controller, refresher, handler, notifier, chClient)
}

func archiveTable(cfg *config.Config) string {
	return cfg.Archive.Database + ".signal_history"
}
