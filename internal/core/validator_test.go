package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func validEmail() Email {
	return Email{
		ID:        "001",
		From:      "angry.customer@example.com",
		Subject:   "Broken product received",
		Body:      "The order arrived damaged.",
		Timestamp: "2024-03-15T10:30:00Z",
	}
}

func TestValidateAcceptsWellFormedEmail(t *testing.T) {
	v := NewValidator(zaptest.NewLogger(t))

	assert.True(t, v.Validate(validEmail()))
}

func TestValidateRejectsMissingFields(t *testing.T) {
	v := NewValidator(zaptest.NewLogger(t))

	tests := []struct {
		name   string
		mutate func(*Email)
	}{
		{"missing id", func(e *Email) { e.ID = "" }},
		{"missing from", func(e *Email) { e.From = "" }},
		{"missing subject", func(e *Email) { e.Subject = "" }},
		{"missing body", func(e *Email) { e.Body = "" }},
		{"missing timestamp", func(e *Email) { e.Timestamp = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := validEmail()
			tt.mutate(&email)
			assert.False(t, v.Validate(email))
		})
	}
}

func TestValidateRejectsBadAddresses(t *testing.T) {
	v := NewValidator(zaptest.NewLogger(t))

	for _, from := range []string{
		"not-an-email",
		"@example.com",
		"user@",
		"user@example",
		"user example@example.com",
	} {
		t.Run(from, func(t *testing.T) {
			email := validEmail()
			email.From = from
			assert.False(t, v.Validate(email))
		})
	}
}

func TestValidateAcceptsAddressVariants(t *testing.T) {
	v := NewValidator(zaptest.NewLogger(t))

	for _, from := range []string{
		"user@example.com",
		"first.last+tag@sub.example.co",
		"user_100%@example-mail.org",
	} {
		t.Run(from, func(t *testing.T) {
			email := validEmail()
			email.From = from
			assert.True(t, v.Validate(email))
		})
	}
}

func TestValidateRejectsBadTimestamps(t *testing.T) {
	v := NewValidator(zaptest.NewLogger(t))

	for _, ts := range []string{
		"2024-03-15",
		"2024-03-15 10:30:00",
		"2024-03-15T10:30:00",
		"2024-03-15T10:30:00+02:00",
		"15/03/2024 10:30",
	} {
		t.Run(ts, func(t *testing.T) {
			email := validEmail()
			email.Timestamp = ts
			assert.False(t, v.Validate(email))
		})
	}
}
