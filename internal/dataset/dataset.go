// Package dataset supplies email batches to the pipeline: a fixed
// embedded sample set and a loader for externally supplied JSON
// batches conforming to the same Email shape.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mikey/llm-auto-responder/internal/core"
)

// Samples returns the embedded demonstration batch.
func Samples() []core.Email {
	return []core.Email{
		{
			ID:        "001",
			From:      "angry.customer@example.com",
			Subject:   "Broken product received",
			Body:      "I received my order #12345 yesterday but it arrived completely damaged. This is unacceptable and I demand a refund immediately. This is the worst customer service I've experienced.",
			Timestamp: "2024-03-15T10:30:00Z",
		},
		{
			ID:        "002",
			From:      "curious.shopper@example.com",
			Subject:   "Question about product specifications",
			Body:      "Hi, I'm interested in buying your premium package but I couldn't find information about whether it's compatible with Mac OS. Could you please clarify this? Thanks!",
			Timestamp: "2024-03-15T11:45:00Z",
		},
		{
			ID:        "003",
			From:      "happy.user@example.com",
			Subject:   "Amazing customer support",
			Body:      "I just wanted to say thank you for the excellent support I received from Sarah on your team. She went above and beyond to help resolve my issue. Keep up the great work!",
			Timestamp: "2024-03-15T13:15:00Z",
		},
		{
			ID:        "004",
			From:      "tech.user@example.com",
			Subject:   "Need help with installation",
			Body:      "I've been trying to install the software for the past hour but keep getting error code 5123. I've already tried restarting my computer and clearing the cache. Please help!",
			Timestamp: "2024-03-15T14:20:00Z",
		},
		{
			ID:        "005",
			From:      "business.client@example.com",
			Subject:   "Partnership opportunity",
			Body:      "Our company is interested in exploring potential partnership opportunities with your organization. Would it be possible to schedule a call next week to discuss this further?",
			Timestamp: "2024-03-15T15:00:00Z",
		},
	}
}

// LoadFile decodes a JSON array of email records from path. Records
// are not validated here; the pipeline's validator decides
// eligibility per email.
func LoadFile(path string) ([]core.Email, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var emails []core.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		return nil, fmt.Errorf("failed to decode batch file: %w", err)
	}

	return emails, nil
}
