package openai

import (
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new OpenAIClient. The API key comes from the
// configuration, which falls back to the OPENAI_API_KEY environment
// variable; an empty key is not rejected here and surfaces as a
// per-call failure instead.
func (f *Factory) CreateClient() (core.TextGenerator, error) {
	openaiCfg := f.cfg.GetOpenAI()

	client := openai.NewClient(openaiCfg.APIKey)

	return NewOpenAIClient(
		client,
		openaiCfg.ModelName,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		f.logger,
	), nil
}
