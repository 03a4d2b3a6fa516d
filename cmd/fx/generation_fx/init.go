package generation_fx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/fx"

	"poisurvey/internal/config"
	"poisurvey/internal/repositories"
	"poisurvey/internal/services"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/utils"
)

var Module = fx.Provide(
	ProvideContentClient,
	ProvidePersonalizationService)

// ProvideContentClient creates the generation client named by
// GENERATION_PROVIDER.
func ProvideContentClient(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (utils.ContentClientInterface, error) {
	clientCfg, err := contentClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("initializing content client", "provider", clientCfg.Provider, "model", clientCfg.Model)
	client, err := utils.NewContentClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", clientCfg.Provider, err)
	}

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return client, nil
}

func ProvidePersonalizationService(
	client utils.ContentClientInterface,
	cfg *config.Config,
	log *logger.Logger,
) services.PersonalizationServiceInterface {
	return services.NewPersonalizationService(
		client,
		repositories.NewContentCacheRepository(cfg.CacheDir),
		log,
		services.PersonalizationConfig{
			Timeout:     cfg.GenerationTimeout,
			Concurrency: cfg.GenerationConcurrency,
		},
	)
}

func contentClientConfig(cfg *config.Config) (utils.ContentClientConfig, error) {
	provider := strings.ToLower(cfg.GenerationProvider)
	out := utils.ContentClientConfig{Provider: provider}

	switch provider {
	case "openai":
		out.APIKey, out.Model = cfg.OpenAIAPIKey, cfg.OpenAIModel
		if out.APIKey == "" {
			return out, fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
	case "azure":
		out.APIKey, out.Model = cfg.AzureAPIKey, cfg.OpenAIModel
		out.Endpoint, out.APIVersion = cfg.AzureEndpoint, cfg.AzureAPIVersion
		if out.APIKey == "" || out.Endpoint == "" {
			return out, fmt.Errorf("AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT are required when using the azure provider")
		}
	case "gemini":
		out.APIKey, out.Model = cfg.GeminiAPIKey, cfg.GeminiModel
		if out.APIKey == "" {
			return out, fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
	default:
		return out, fmt.Errorf("unsupported generation provider: %s. Use 'openai', 'azure' or 'gemini'", cfg.GenerationProvider)
	}
	return out, nil
}
