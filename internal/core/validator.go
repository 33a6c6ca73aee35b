package core

import (
	"regexp"
	"time"

	"go.uber.org/zap"
)

// timestampLayout is the only accepted timestamp shape: UTC, seconds
// precision, trailing literal Z.
const timestampLayout = "2006-01-02T15:04:05Z"

// addressPattern is a syntactic sanity check on the sender address,
// not full RFC 5322 validation.
var addressPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Validator checks an email record's structural validity before any
// remote call is made.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate reports whether the email is eligible for processing.
// Checks run in order and short-circuit on the first failure; each
// failure logs a diagnostic with the email id. Validate never panics
// and never returns an error.
func (v *Validator) Validate(email Email) bool {
	id := email.ID
	if id == "" {
		id = UnknownEmailID
	}

	if email.ID == "" || email.From == "" || email.Subject == "" || email.Body == "" || email.Timestamp == "" {
		v.logger.Info("Email has incorrect format",
			zap.String("email_id", id))
		return false
	}

	if !addressPattern.MatchString(email.From) {
		v.logger.Info("Email has incorrect 'from' address format",
			zap.String("email_id", id),
			zap.String("from", email.From))
		return false
	}

	if _, err := time.Parse(timestampLayout, email.Timestamp); err != nil {
		v.logger.Info("Email has incorrect timestamp format",
			zap.String("email_id", id),
			zap.String("timestamp", email.Timestamp))
		return false
	}

	return true
}
