package fx

import (
	"lycans-tracker/internal/api"
	"lycans-tracker/internal/config"
	"lycans-tracker/internal/database"
	"lycans-tracker/internal/logger"
	"lycans-tracker/internal/repository"
	"lycans-tracker/internal/server"
	"lycans-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewGameRepository),
	// api client
	fx.Provide(api.NewExportClient),
	// svc
	fx.Provide(service.NewIngestService),
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewStatsServer),
)
