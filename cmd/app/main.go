package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"poisurvey/cmd/fx/catalog_fx"
	"poisurvey/cmd/fx/config_fx"
	"poisurvey/cmd/fx/controllers_fx"
	"poisurvey/cmd/fx/db_fx"
	"poisurvey/cmd/fx/generation_fx"
	"poisurvey/cmd/fx/logger_fx"
	"poisurvey/cmd/fx/recorder_fx"
	"poisurvey/cmd/fx/session_fx"
	"poisurvey/cmd/fx/survey_fx"
	"poisurvey/internal/api/controllers"
	"poisurvey/internal/config"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/middleware"
	"poisurvey/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		session_fx.Module,
		catalog_fx.Module,
		generation_fx.Module,
		recorder_fx.Module,
		survey_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	tokens *utils.SessionTokenIssuer,
	surveyController *controllers.SurveyController,
	adminController *controllers.AdminController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, tokens, surveyController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	tokens *utils.SessionTokenIssuer,
	surveyController *controllers.SurveyController,
	adminController *controllers.AdminController) {

	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, nil, "ok")
	})
	r.Static("/assets", cfg.AssetDir)

	r.POST("/survey/sessions", surveyController.CreateSession)
	r.GET("/survey/options", surveyController.GetOptions)

	surveyGroup := r.Group("/survey", middleware.SessionMiddleware(tokens))
	surveyGroup.GET("/state", surveyController.GetState)
	surveyGroup.POST("/consent", surveyController.GiveConsent)
	surveyGroup.POST("/intake", surveyController.SubmitIntake)
	surveyGroup.GET("/progress", surveyController.GetProgress)
	surveyGroup.GET("/comparisons/current", surveyController.GetCurrentComparison)
	surveyGroup.POST("/comparisons/:index", surveyController.SubmitComparison)
	surveyGroup.POST("/final", surveyController.SubmitFinal)
	surveyGroup.POST("/restart", surveyController.Restart)

	adminGroup := r.Group("/admin", middleware.AdminKeyMiddleware(cfg.AdminKey))
	adminGroup.GET("/comparisons", adminController.ListComparisons)
	adminGroup.GET("/feedback", adminController.ListFinal)
}
