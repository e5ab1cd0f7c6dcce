//go:build wireinject
// +build wireinject

package di

import (
	"SignalDeck/pkg/config"
	"SignalDeck/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideStatusBoard,

		// Credentials and the remote adapter
		ProvideCredentialStore,
		ProvideStoreFactory,
		ProvideController,

		// Use cases
		ProvideNotifier,
		ProvidePipeline,
		ProvideStatsAggregator,
		ProvideRefresher,

		// Delivery and optional infrastructure
		ProvideHub,
		ProvideClickHouseClient,
		ProvideSignalArchive,
		ProvideCache,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
