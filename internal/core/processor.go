package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/llm-auto-responder/internal/utils"
	"go.uber.org/zap"
)

// responseInstructions maps every category to the instruction fragment
// used when drafting a reply. One entry per Category variant.
var responseInstructions = map[Category]string{
	CategoryComplaint:      "Please give a considerate reply apologizing for the caused inconvenience and providing a way to fix the user's issues if possible.",
	CategoryInquiry:        "Please reply with a thoughtful answer to the user's inquiry giving all necessary information.",
	CategoryFeedback:       "Please thank the user for their valuable feedback and tell them that the necessary changes to accommodate it will be carried out.",
	CategorySupportRequest: "Please provide the user with helpful and clear instructions on how to troubleshoot the issue.",
	CategoryOther:          "Please answer thoughtfully to the user providing a general answer to their inquiry.",
}

const classifyPromptFormat = `You are a helpful assistant with the task of classifying an email.
For the email with subject: %s
And body:
%s

Answer with exactly one of the following categories: [
	complaint
	inquiry
	feedback
	support_request
	other
]
Reply only with one of the mentioned categories and nothing else.`

const respondPromptFormat = `You are a helpful assistant and your task is to reply to the following email.
Body:
%s

%s`

// EmailProcessor performs the two remote stages of the pipeline:
// category classification and reply generation. Both stages share a
// single TextGenerator handle injected at construction.
type EmailProcessor struct {
	llm               TextGenerator
	cache             ClassificationCache
	cacheEnabled      bool
	cacheTTL          time.Duration
	classifyMaxTokens int
	respondMaxTokens  int
	maxBodySize       int
	textProcessor     *utils.TextProcessor
	logger            *zap.Logger
}

// NewEmailProcessor creates a new email processor. cache may be nil
// when cacheEnabled is false.
func NewEmailProcessor(
	llm TextGenerator,
	cache ClassificationCache,
	cacheEnabled bool,
	cacheTTL time.Duration,
	classifyMaxTokens int,
	respondMaxTokens int,
	maxBodySize int,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) *EmailProcessor {
	return &EmailProcessor{
		llm:               llm,
		cache:             cache,
		cacheEnabled:      cacheEnabled,
		cacheTTL:          cacheTTL,
		classifyMaxTokens: classifyMaxTokens,
		respondMaxTokens:  respondMaxTokens,
		maxBodySize:       maxBodySize,
		textProcessor:     textProcessor,
		logger:            logger,
	}
}

// Classify asks the remote service for a category label. Output that
// is not one of the four specific categories is normalized to
// CategoryOther; only a remote-call failure yields an error, so a
// caller can distinguish "classified as other" from "classification
// failed".
func (p *EmailProcessor) Classify(ctx context.Context, email Email) (Category, error) {
	if p.cacheEnabled && p.cache != nil {
		if category, ok := p.cache.Get(email.From); ok {
			p.logger.Debug("Classification cache hit",
				zap.String("email_id", email.ID),
				zap.String("sender", email.From))
			return category, nil
		}
	}

	body := p.textProcessor.ProcessText(email.Body, p.maxBodySize)
	prompt := fmt.Sprintf(classifyPromptFormat, email.Subject, body)

	reply, err := p.llm.Generate(ctx, prompt, p.classifyMaxTokens)
	if err != nil {
		p.logger.Info("Error classifying email",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return "", fmt.Errorf("failed to classify email %s: %w", email.ID, err)
	}

	category := ParseCategory(reply)
	p.logger.Debug("Email classified",
		zap.String("email_id", email.ID),
		zap.String("category", string(category)))

	if p.cacheEnabled && p.cache != nil {
		p.cache.Set(email.From, category, p.cacheTTL)
	}

	return category, nil
}

// GenerateResponse asks the remote service for reply text tailored to
// the email's category. On failure the error is logged with the email
// id and returned.
func (p *EmailProcessor) GenerateResponse(ctx context.Context, email Email, category Category) (string, error) {
	instruction, ok := responseInstructions[category]
	if !ok {
		instruction = responseInstructions[CategoryOther]
	}

	body := p.textProcessor.ProcessText(email.Body, p.maxBodySize)
	prompt := fmt.Sprintf(respondPromptFormat, body, instruction)

	reply, err := p.llm.Generate(ctx, prompt, p.respondMaxTokens)
	if err != nil {
		p.logger.Info("Error generating response to email",
			zap.String("email_id", email.ID),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate response for email %s: %w", email.ID, err)
	}

	return strings.TrimSpace(reply), nil
}
