package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AutomationService sequences validation, classification, response
// generation and notification for each email. The chain is strictly
// fail-fast with no retries: once a stage fails, no later stage is
// attempted and the failure is terminal for that email only.
type AutomationService struct {
	validator *Validator
	processor *EmailProcessor
	notifier  Notifier
	logger    *zap.Logger
}

// NewAutomationService creates a new automation service.
func NewAutomationService(
	validator *Validator,
	processor *EmailProcessor,
	notifier Notifier,
	logger *zap.Logger,
) *AutomationService {
	return &AutomationService{
		validator: validator,
		processor: processor,
		notifier:  notifier,
		logger:    logger,
	}
}

// ProcessEmail runs a single email through the complete pipeline and
// returns its outcome record. It never returns an error: every stage
// failure is converted into a terminal result for the email.
func (s *AutomationService) ProcessEmail(ctx context.Context, email Email) ProcessingResult {
	id := email.ID
	if id == "" {
		id = UnknownEmailID
	}

	s.transition(id, StateReceived)

	if !s.validator.Validate(email) {
		s.transition(id, StateInvalid)
		return ProcessingResult{
			EmailID:        id,
			Success:        false,
			Classification: StatusInvalidFormat,
		}
	}
	s.transition(id, StateValidated)

	category, err := s.processor.Classify(ctx, email)
	if err != nil {
		s.transition(id, StateClassificationFailed)
		return ProcessingResult{
			EmailID:        id,
			Success:        false,
			Classification: StatusClassificationError,
		}
	}
	s.transition(id, StateClassified)

	response, err := s.processor.GenerateResponse(ctx, email, category)
	if err != nil {
		s.transition(id, StateGenerationFailed)
		return ProcessingResult{
			EmailID:        id,
			Success:        false,
			Classification: StatusGenerationError,
			Category:       category,
		}
	}
	s.transition(id, StateResponded)

	s.notifier.Notify(ctx, id, response)
	s.transition(id, StateNotified)

	return ProcessingResult{
		EmailID:        id,
		Success:        true,
		Classification: string(category),
		Category:       category,
		ResponseSent:   response,
	}
}

// ProcessBatch applies the pipeline to every email in order and
// returns one result per input, preserving input order. Emails are
// processed sequentially; a failure never drops an email or aborts the
// batch.
func (s *AutomationService) ProcessBatch(ctx context.Context, emails []Email) []ProcessingResult {
	batchID := uuid.New().String()
	s.logger.Info("Processing batch",
		zap.String("batch_id", batchID),
		zap.Int("emails", len(emails)))

	results := make([]ProcessingResult, 0, len(emails))
	for _, email := range emails {
		s.logger.Info("Processing email",
			zap.String("batch_id", batchID),
			zap.String("email_id", email.ID))
		results = append(results, s.ProcessEmail(ctx, email))
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	s.logger.Info("Batch complete",
		zap.String("batch_id", batchID),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(results)-succeeded))

	return results
}

func (s *AutomationService) transition(emailID string, state ProcessingState) {
	s.logger.Debug("Pipeline transition",
		zap.String("email_id", emailID),
		zap.String("state", string(state)))
}
