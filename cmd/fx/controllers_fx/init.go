package controllers_fx

import (
	"go.uber.org/fx"

	"poisurvey/internal/api/controllers"
	"poisurvey/internal/config"
	"poisurvey/internal/services"
	"poisurvey/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideSurveyController),
	fx.Provide(controllers.NewAdminController))

func provideSurveyController(
	surveyService services.SurveyServiceInterface,
	tokens *utils.SessionTokenIssuer,
	cfg *config.Config,
) *controllers.SurveyController {
	return controllers.NewSurveyController(surveyService, tokens, cfg.IsProduction())
}
