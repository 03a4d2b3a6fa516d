package session_fx

import (
	"context"

	"go.uber.org/fx"

	"poisurvey/internal/config"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/memcache"
	"poisurvey/pkg/utils"
)

var Module = fx.Provide(
	provideSessionStore,
	provideTokenIssuer)

// provideSessionStore shares sessions through Redis when REDIS_ADDR is set
// and keeps them in process otherwise.
func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (memcache.SessionStore, error) {
	if cfg.RedisAddr == "" {
		log.Info("using in-memory session store", "ttl", cfg.SessionTTL)
		return memcache.NewMemorySessions(cfg.SessionTTL), nil
	}

	store, err := memcache.NewRedisSessions(cfg.RedisAddr, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	log.Info("using redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

func provideTokenIssuer(cfg *config.Config) *utils.SessionTokenIssuer {
	return utils.NewSessionTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
}
