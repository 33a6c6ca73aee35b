package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mikey/llm-auto-responder/internal/utils"
)

type generateCall struct {
	prompt    string
	maxTokens int
}

// fakeGenerator replays canned replies and errors in call order.
type fakeGenerator struct {
	replies []string
	errs    []error
	calls   []generateCall
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	i := len(g.calls)
	g.calls = append(g.calls, generateCall{prompt: prompt, maxTokens: maxTokens})
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.replies) {
		return g.replies[i], nil
	}
	return "", errors.New("no canned reply")
}

type fakeCache struct {
	entries map[string]Category
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]Category)}
}

func (c *fakeCache) Get(sender string) (Category, bool) {
	category, ok := c.entries[sender]
	return category, ok
}

func (c *fakeCache) Set(sender string, category Category, _ time.Duration) {
	c.entries[sender] = category
}

func newTestProcessor(t *testing.T, gen TextGenerator) *EmailProcessor {
	logger := zaptest.NewLogger(t)
	return NewEmailProcessor(gen, nil, false, 0, 10, 100, 4096, utils.NewTextProcessor(logger), logger)
}

func TestParseCategoryNormalization(t *testing.T) {
	for _, input := range []string{"complaint", "Complaint", " complaint ", "COMPLAINT", "\ncomplaint\n"} {
		assert.Equal(t, CategoryComplaint, ParseCategory(input), "input %q", input)
	}
}

func TestParseCategoryIdempotent(t *testing.T) {
	for _, category := range Categories {
		assert.Equal(t, category, ParseCategory(string(category)))
	}
}

func TestParseCategoryUnknownIsOther(t *testing.T) {
	for _, input := range []string{"unsure", "", "spam", "complaint inquiry", "I think this is a complaint"} {
		assert.Equal(t, CategoryOther, ParseCategory(input), "input %q", input)
	}
}

func TestClassifyReturnsCategory(t *testing.T) {
	gen := &fakeGenerator{replies: []string{" Complaint \n"}}
	p := newTestProcessor(t, gen)

	category, err := p.Classify(context.Background(), validEmail())
	require.NoError(t, err)
	assert.Equal(t, CategoryComplaint, category)
}

func TestClassifyUsesClassifierTokenCeiling(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"inquiry"}}
	p := newTestProcessor(t, gen)

	_, err := p.Classify(context.Background(), validEmail())
	require.NoError(t, err)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, 10, gen.calls[0].maxTokens)
}

func TestClassifyPromptEmbedsSubjectAndBody(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"inquiry"}}
	p := newTestProcessor(t, gen)
	email := validEmail()

	_, err := p.Classify(context.Background(), email)
	require.NoError(t, err)
	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].prompt, email.Subject)
	assert.Contains(t, gen.calls[0].prompt, email.Body)
}

func TestClassifyVerboseReplyIsOtherNotError(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"This looks like a customer complaint to me."}}
	p := newTestProcessor(t, gen)

	category, err := p.Classify(context.Background(), validEmail())
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, category)
}

func TestClassifyRemoteFailure(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("connection refused")}}
	p := newTestProcessor(t, gen)

	_, err := p.Classify(context.Background(), validEmail())
	assert.Error(t, err)
}

func TestClassifyCacheHitSkipsRemoteCall(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"complaint"}}
	logger := zaptest.NewLogger(t)
	cache := newFakeCache()
	p := NewEmailProcessor(gen, cache, true, time.Hour, 10, 100, 4096, utils.NewTextProcessor(logger), logger)

	email := validEmail()
	first, err := p.Classify(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, CategoryComplaint, first)
	require.Len(t, gen.calls, 1)

	second, err := p.Classify(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, CategoryComplaint, second)
	assert.Len(t, gen.calls, 1, "cache hit must not call the remote service")
}

func TestGenerateResponseReturnsTrimmedText(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"  We are sorry about the damaged order.  \n"}}
	p := newTestProcessor(t, gen)

	response, err := p.GenerateResponse(context.Background(), validEmail(), CategoryComplaint)
	require.NoError(t, err)
	assert.Equal(t, "We are sorry about the damaged order.", response)
}

func TestGenerateResponseUsesResponderTokenCeiling(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"Thanks for reaching out."}}
	p := newTestProcessor(t, gen)

	_, err := p.GenerateResponse(context.Background(), validEmail(), CategoryInquiry)
	require.NoError(t, err)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, 100, gen.calls[0].maxTokens)
}

func TestGenerateResponseEmbedsCategoryInstruction(t *testing.T) {
	for _, category := range Categories {
		gen := &fakeGenerator{replies: []string{"reply"}}
		p := newTestProcessor(t, gen)

		_, err := p.GenerateResponse(context.Background(), validEmail(), category)
		require.NoError(t, err)
		require.Len(t, gen.calls, 1)
		assert.Contains(t, gen.calls[0].prompt, responseInstructions[category],
			"prompt for %s must carry its instruction", category)
	}
}

func TestGenerateResponseRemoteFailure(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("service unavailable")}}
	p := newTestProcessor(t, gen)

	_, err := p.GenerateResponse(context.Background(), validEmail(), CategoryComplaint)
	assert.Error(t, err)
}

func TestResponseInstructionsCoverEveryCategory(t *testing.T) {
	for _, category := range Categories {
		assert.NotEmpty(t, responseInstructions[category], "missing instruction for %s", category)
	}
}
