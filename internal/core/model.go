package core

import (
	"strings"
)

// Email represents one inbound support message. Records are constructed
// externally (embedded samples or a JSON batch file) and are never
// mutated by the pipeline.
type Email struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// Category is one of the fixed classification labels for an email.
type Category string

const (
	CategoryComplaint      Category = "complaint"
	CategoryInquiry        Category = "inquiry"
	CategoryFeedback       Category = "feedback"
	CategorySupportRequest Category = "support_request"
	CategoryOther          Category = "other"
)

// Categories lists every valid category in a stable order.
var Categories = []Category{
	CategoryComplaint,
	CategoryInquiry,
	CategoryFeedback,
	CategorySupportRequest,
	CategoryOther,
}

// ParseCategory normalizes raw model output into a Category. The match
// is case and whitespace insensitive; anything outside the four
// specific labels maps to CategoryOther. Garbled or verbose output is
// therefore an "other" classification, never an error.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryComplaint:
		return CategoryComplaint
	case CategoryInquiry:
		return CategoryInquiry
	case CategoryFeedback:
		return CategoryFeedback
	case CategorySupportRequest:
		return CategorySupportRequest
	default:
		return CategoryOther
	}
}

// ProcessingState tracks where an email is in the pipeline.
type ProcessingState string

const (
	StateReceived             ProcessingState = "received"
	StateValidated            ProcessingState = "validated"
	StateClassified           ProcessingState = "classified"
	StateResponded            ProcessingState = "responded"
	StateNotified             ProcessingState = "notified"
	StateInvalid              ProcessingState = "invalid"
	StateClassificationFailed ProcessingState = "classification_failed"
	StateGenerationFailed     ProcessingState = "generation_failed"
)

// UnknownEmailID is reported when the id of a record cannot be read.
const UnknownEmailID = "Unknown"

// Fixed phrases reported in place of a category when a stage fails.
const (
	StatusInvalidFormat       = "Email in invalid format."
	StatusClassificationError = "Email classification error."
	StatusGenerationError     = "Response generation error."
)

// ProcessingResult is the outcome record for one email. Classification
// holds either the category value or one of the fixed error phrases.
// Category preserves the determined label even when a later stage
// fails, so a generation failure does not discard the classification.
type ProcessingResult struct {
	EmailID        string   `json:"email_id"`
	Success        bool     `json:"success"`
	Classification string   `json:"classification"`
	Category       Category `json:"category,omitempty"`
	ResponseSent   string   `json:"response_sent,omitempty"`
}
