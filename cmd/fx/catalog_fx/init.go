package catalog_fx

import (
	"go.uber.org/fx"

	"poisurvey/internal/config"
	"poisurvey/internal/services"
)

var Module = fx.Provide(provideCatalogService)

func provideCatalogService(cfg *config.Config) services.CatalogServiceInterface {
	return services.NewCatalogService(cfg.CatalogPath)
}
