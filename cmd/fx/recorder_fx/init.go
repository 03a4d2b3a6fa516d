package recorder_fx

import (
	"go.uber.org/fx"

	"poisurvey/internal/config"
	"poisurvey/internal/repositories"
	"poisurvey/internal/services"
	"poisurvey/pkg/logger"
)

var Module = fx.Provide(
	provideExportRepository,
	provideRecorderService)

func provideExportRepository(cfg *config.Config) repositories.ExportRepositoryInterface {
	return repositories.NewExportRepository(cfg.ResultsDir)
}

func provideRecorderService(
	exports repositories.ExportRepositoryInterface,
	mirror repositories.ResponseRepositoryInterface,
	log *logger.Logger,
) services.RecorderServiceInterface {
	return services.NewRecorderService(exports, mirror, log)
}
