package core

import (
	"context"
	"time"
)

// TextGenerator defines the interface for the remote text-generation
// service. A single authenticated client is created at startup and
// reused for every call.
type TextGenerator interface {
	// Generate sends a single-turn prompt and returns the generated
	// text. maxTokens caps the size of the reply for this call.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ClassificationCache defines the interface for caching classification
// results per sender.
type ClassificationCache interface {
	// Get retrieves a cached category for a sender.
	Get(senderEmail string) (Category, bool)

	// Set stores a category for a sender with a time-to-live.
	Set(senderEmail string, category Category, ttl time.Duration)
}

// Notifier represents dispatching a generated reply. It deliberately
// has no return value: notification is the last pipeline stage and
// must not be able to fail it.
type Notifier interface {
	Notify(ctx context.Context, emailID string, response string)
}
