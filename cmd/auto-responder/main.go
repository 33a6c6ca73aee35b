package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/dataset"
	"github.com/mikey/llm-auto-responder/internal/di"
	"github.com/mikey/llm-auto-responder/internal/report"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.Flags,
	logger *zap.Logger,
	service *core.AutomationService,
	llmClient core.TextGenerator,
) error {
	defer logger.Sync()

	// Load the batch
	var emails []core.Email
	if flags.BatchFile != "" {
		var err error
		emails, err = dataset.LoadFile(flags.BatchFile)
		if err != nil {
			logger.Error("Failed to load batch file", zap.Error(err), zap.String("file", flags.BatchFile))
			return err
		}
		logger.Info("Loaded batch file",
			zap.String("file", flags.BatchFile),
			zap.Int("emails", len(emails)))
	} else {
		emails = dataset.Samples()
		logger.Info("Using embedded sample batch", zap.Int("emails", len(emails)))
	}

	// Process every email in order
	results := service.ProcessBatch(context.Background(), emails)

	// Print the summary table
	fmt.Printf("\nProcessing Summary:\n")
	if err := report.WriteSummary(os.Stdout, results); err != nil {
		logger.Error("Failed to write summary", zap.Error(err))
		return err
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	return nil
}
