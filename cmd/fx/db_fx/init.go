package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"poisurvey/internal/config"
	"poisurvey/internal/infra"
	"poisurvey/internal/repositories"
	"poisurvey/pkg/logger"
)

var Module = fx.Provide(
	provideDB,
	provideResponseRepository)

// provideDB yields a nil *gorm.DB when POSTGRES_URL is empty.
func provideDB(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideResponseRepository(db *gorm.DB) repositories.ResponseRepositoryInterface {
	if db == nil {
		return nil
	}
	return repositories.NewResponseRepository(db)
}
