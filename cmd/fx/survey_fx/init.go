package survey_fx

import (
	"context"

	"go.uber.org/fx"

	"poisurvey/internal/services"
	"poisurvey/internal/survey"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/memcache"
)

var Module = fx.Provide(provideSurveyService)

func provideSurveyService(
	lc fx.Lifecycle,
	store memcache.SessionStore,
	catalog services.CatalogServiceInterface,
	personalization services.PersonalizationServiceInterface,
	recorder services.RecorderServiceInterface,
	log *logger.Logger,
) services.SurveyServiceInterface {
	svc := services.NewSurveyService(store, catalog, personalization, recorder, survey.NewMachine(nil), log)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			svc.Shutdown()
			return nil
		},
	})
	return svc
}
