package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/mikey/llm-auto-responder/internal/adapters/notify"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/factory"
	"github.com/mikey/llm-auto-responder/internal/logging"
	"github.com/mikey/llm-auto-responder/internal/utils"
	"go.uber.org/zap"
)

var (
	// LLM provider flags
	provider    = flag.String("provider", "openai", "LLM provider (openai, bedrock, gemini)")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to the LLM")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI (defaults to OPENAI_API_KEY)")
	openaiModelName = flag.String("openai-model", "gpt-3.5-turbo", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Pipeline flags
	classifierMaxTokens = flag.Int("classifier-max-tokens", 10, "Token ceiling for the classification call")
	responderMaxTokens  = flag.Int("responder-max-tokens", 100, "Token ceiling for the response generation call")

	// Input flags
	inputFile = flag.String("file", "", "Input email file in RFC822 format (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	// Initialize the text-generation client
	llmFactory := factory.NewLLMFactory(cfg, logger)
	llmClient, err := llmFactory.CreateTextGenerator()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	email, err := emailFromMessage(msg)
	if err != nil {
		logger.Fatal("Failed to extract email content", zap.Error(err))
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("ID: %s\n", email.ID)
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))
	fmt.Printf("\n")

	// Assemble the pipeline
	textProcessor := utils.NewTextProcessor(logger)
	processor := core.NewEmailProcessor(
		llmClient,
		nil,   // no cache for a single message
		false, // cache disabled
		time.Duration(0),
		*classifierMaxTokens,
		*responderMaxTokens,
		*maxBodySize,
		textProcessor,
		logger,
	)
	service := core.NewAutomationService(
		core.NewValidator(logger),
		processor,
		notify.NewLogNotifier(logger),
		logger,
	)

	fmt.Printf("=== Processing ===\n")
	fmt.Printf("Provider: %s\n", *provider)

	startTime := time.Now()
	result := service.ProcessEmail(context.Background(), email)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Success: %t\n", result.Success)
	fmt.Printf("Classification: %s\n", result.Classification)
	if result.ResponseSent != "" {
		fmt.Printf("Response:\n%s\n", result.ResponseSent)
	}
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
}

// emailFromMessage maps an RFC822 message onto the pipeline's email
// record shape.
func emailFromMessage(msg *mail.Message) (core.Email, error) {
	from := msg.Header.Get("From")
	if addr, err := mail.ParseAddress(from); err == nil {
		from = addr.Address
	}

	id := strings.Trim(msg.Header.Get("Message-Id"), "<>")
	if id == "" {
		id = "local"
	}

	timestamp := ""
	if date, err := msg.Header.Date(); err == nil {
		timestamp = date.UTC().Format(time.RFC3339)
	} else {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return core.Email{}, fmt.Errorf("failed to read email body: %w", err)
	}

	return core.Email{
		ID:        id,
		From:      from,
		Subject:   msg.Header.Get("Subject"),
		Body:      string(bodyBytes),
		Timestamp: timestamp,
	}, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	v.Set("llm.max_body_size", *maxBodySize)

	switch *provider {
	case "openai":
		if *openaiAPIKey != "" {
			v.Set("openai.api_key", *openaiAPIKey)
		}
		v.Set("openai.model_name", *openaiModelName)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
	}

	v.Set("classifier.max_tokens", *classifierMaxTokens)
	v.Set("responder.max_tokens", *responderMaxTokens)

	return config.NewFromViper(v)
}
