package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type notification struct {
	emailID  string
	response string
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(_ context.Context, emailID string, response string) {
	n.sent = append(n.sent, notification{emailID: emailID, response: response})
}

func newTestService(t *testing.T, gen TextGenerator) (*AutomationService, *fakeNotifier) {
	logger := zaptest.NewLogger(t)
	notifier := &fakeNotifier{}
	service := NewAutomationService(
		NewValidator(logger),
		newTestProcessor(t, gen),
		notifier,
		logger,
	)
	return service, notifier
}

func TestProcessEmailSuccess(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"complaint", "We apologize for the inconvenience."}}
	service, notifier := newTestService(t, gen)

	result := service.ProcessEmail(context.Background(), validEmail())

	assert.True(t, result.Success)
	assert.Equal(t, "001", result.EmailID)
	assert.Equal(t, "complaint", result.Classification)
	assert.Equal(t, CategoryComplaint, result.Category)
	assert.Equal(t, "We apologize for the inconvenience.", result.ResponseSent)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "001", notifier.sent[0].emailID)
	assert.Equal(t, "We apologize for the inconvenience.", notifier.sent[0].response)
}

func TestProcessEmailInvalidFormat(t *testing.T) {
	gen := &fakeGenerator{}
	service, notifier := newTestService(t, gen)

	email := validEmail()
	email.Timestamp = "2024-03-15"
	result := service.ProcessEmail(context.Background(), email)

	assert.False(t, result.Success)
	assert.Equal(t, StatusInvalidFormat, result.Classification)
	assert.Empty(t, result.ResponseSent)
	assert.Empty(t, gen.calls, "invalid email must not reach the remote service")
	assert.Empty(t, notifier.sent)
}

func TestProcessEmailMissingIDReportsUnknown(t *testing.T) {
	service, _ := newTestService(t, &fakeGenerator{})

	email := validEmail()
	email.ID = ""
	result := service.ProcessEmail(context.Background(), email)

	assert.False(t, result.Success)
	assert.Equal(t, UnknownEmailID, result.EmailID)
	assert.Equal(t, StatusInvalidFormat, result.Classification)
}

func TestProcessEmailClassificationFailure(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("timeout")}}
	service, notifier := newTestService(t, gen)

	result := service.ProcessEmail(context.Background(), validEmail())

	assert.False(t, result.Success)
	assert.Equal(t, StatusClassificationError, result.Classification)
	assert.Empty(t, result.ResponseSent)
	assert.Len(t, gen.calls, 1, "generation must not be attempted after a classification failure")
	assert.Empty(t, notifier.sent)
}

func TestProcessEmailGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{
		replies: []string{"support_request", ""},
		errs:    []error{nil, errors.New("service unavailable")},
	}
	service, notifier := newTestService(t, gen)

	result := service.ProcessEmail(context.Background(), validEmail())

	assert.False(t, result.Success)
	assert.Equal(t, StatusGenerationError, result.Classification)
	assert.Equal(t, CategorySupportRequest, result.Category, "determined category must survive a generation failure")
	assert.Empty(t, result.ResponseSent)
	assert.Empty(t, notifier.sent)
}

func TestProcessEmailAmbiguousClassificationProceedsAsOther(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"unsure", "A general reply."}}
	service, _ := newTestService(t, gen)

	result := service.ProcessEmail(context.Background(), validEmail())

	assert.True(t, result.Success)
	assert.Equal(t, "other", result.Classification)
	assert.Equal(t, "A general reply.", result.ResponseSent)
}

func TestProcessBatchPreservesOrder(t *testing.T) {
	// Two replies per email: category then response text.
	gen := &fakeGenerator{replies: []string{
		"complaint", "r1",
		"inquiry", "r2",
		"feedback", "r3",
	}}
	service, _ := newTestService(t, gen)

	emails := []Email{validEmail(), validEmail(), validEmail()}
	for i := range emails {
		emails[i].ID = fmt.Sprintf("%03d", i+1)
	}

	results := service.ProcessBatch(context.Background(), emails)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, emails[i].ID, r.EmailID, "order must be preserved at index %d", i)
		assert.True(t, r.Success)
	}
	assert.Equal(t, "complaint", results[0].Classification)
	assert.Equal(t, "inquiry", results[1].Classification)
	assert.Equal(t, "feedback", results[2].Classification)
}

func TestProcessBatchOneRowPerEmailRegardlessOfFailures(t *testing.T) {
	// Only the middle email is valid; the remote service never
	// answers, so it fails at classification.
	gen := &fakeGenerator{errs: []error{errors.New("down")}}
	service, _ := newTestService(t, gen)

	invalid1 := validEmail()
	invalid1.From = "not-an-email"
	valid := validEmail()
	valid.ID = "002"
	invalid2 := validEmail()
	invalid2.ID = "003"
	invalid2.Body = ""

	results := service.ProcessBatch(context.Background(), []Email{invalid1, valid, invalid2})

	require.Len(t, results, 3)
	assert.Equal(t, StatusInvalidFormat, results[0].Classification)
	assert.Equal(t, StatusClassificationError, results[1].Classification)
	assert.Equal(t, StatusInvalidFormat, results[2].Classification)
	for _, r := range results {
		assert.False(t, r.Success)
	}
}

func TestProcessBatchEmpty(t *testing.T) {
	service, _ := newTestService(t, &fakeGenerator{})

	results := service.ProcessBatch(context.Background(), nil)

	assert.Empty(t, results)
}
