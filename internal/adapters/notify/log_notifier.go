package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records that a reply dispatch was attempted. It performs
// no real I/O; a real mail transport would slot in behind the same
// interface.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new logging notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the dispatch of a generated reply.
func (n *LogNotifier) Notify(_ context.Context, emailID string, response string) {
	n.logger.Info("Sending response for email",
		zap.String("email_id", emailID),
		zap.Int("response_size", len(response)))
}
