package config_fx

import (
	"go.uber.org/fx"

	"poisurvey/internal/config"
)

var Module = fx.Provide(config.Load)
