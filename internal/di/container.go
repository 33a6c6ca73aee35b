package di

import (
	"flag"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-auto-responder/internal/adapters/notify"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/factory"
	"github.com/mikey/llm-auto-responder/internal/logging"
	"github.com/mikey/llm-auto-responder/internal/utils"
)

// Flags contains all command line flags for the batch application
type Flags struct {
	// LLM provider flags
	Provider    string
	MaxBodySize int

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// Pipeline flags
	ClassifierMaxTokens int
	ResponderMaxTokens  int
	CacheEnabled        bool

	// Input flags
	BatchFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a Flags struct
func ParseFlags() *Flags {
	flags := &Flags{}

	// LLM provider flags
	flag.StringVar(&flags.Provider, "provider", "openai", "LLM provider (openai, bedrock, gemini)")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum email body size to send to the LLM")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI (defaults to OPENAI_API_KEY)")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-3.5-turbo", "OpenAI model name")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// Pipeline flags
	flag.IntVar(&flags.ClassifierMaxTokens, "classifier-max-tokens", 10, "Token ceiling for the classification call")
	flag.IntVar(&flags.ResponderMaxTokens, "responder-max-tokens", 100, "Token ceiling for the response generation call")
	flag.BoolVar(&flags.CacheEnabled, "cache", false, "Cache classifications per sender for the run")

	// Input flags
	flag.StringVar(&flags.BatchFile, "file", "", "JSON batch file of emails (use embedded samples if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildContainer creates and configures a dependency injection
// container for the batch application
func BuildContainer(flags *Flags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *Flags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *Flags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *Flags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register text generator
	if err := container.Provide(func(f *factory.LLMFactory) (core.TextGenerator, error) {
		return f.CreateTextGenerator()
	}); err != nil {
		return nil, err
	}

	// Register classification cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ClassificationCache, error) {
		return f.CreateClassificationCache()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register email processor
	if err := container.Provide(func(
		llm core.TextGenerator,
		cache core.ClassificationCache,
		cacheFactory *factory.CacheFactory,
		textProcessor *utils.TextProcessor,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.EmailProcessor, error) {
		cacheTTL := time.Duration(0)
		if cacheFactory.IsCacheEnabled() {
			ttl, err := cacheFactory.GetCacheTTL()
			if err != nil {
				return nil, err
			}
			cacheTTL = ttl
		}

		pipelineCfg := cfg.GetPipeline()
		return core.NewEmailProcessor(
			llm,
			cache,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
			pipelineCfg.ClassifierMaxTokens,
			pipelineCfg.ResponderMaxTokens,
			cfg.GetLLM().MaxBodySize,
			textProcessor,
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register validator
	if err := container.Provide(core.NewValidator); err != nil {
		return nil, err
	}

	// Register notifier
	if err := container.Provide(func(logger *zap.Logger) core.Notifier {
		return notify.NewLogNotifier(logger)
	}); err != nil {
		return nil, err
	}

	// Register automation service
	if err := container.Provide(core.NewAutomationService); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *Flags) *config.Config {
	v := config.NewEmptyViper()

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)
	v.Set("llm.max_body_size", flags.MaxBodySize)

	// Set provider-specific configuration
	switch flags.Provider {
	case "openai":
		if flags.OpenAIAPIKey != "" {
			v.Set("openai.api_key", flags.OpenAIAPIKey)
		}
		v.Set("openai.model_name", flags.OpenAIModelName)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
	}

	// Set pipeline configuration
	v.Set("classifier.max_tokens", flags.ClassifierMaxTokens)
	v.Set("responder.max_tokens", flags.ResponderMaxTokens)
	v.Set("cache.enabled", flags.CacheEnabled)

	return config.NewFromViper(v)
}
