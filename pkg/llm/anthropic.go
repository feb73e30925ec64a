package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when AnthropicClient is constructed without an
// explicit override. Callers needing a cheaper/faster model for
// translation can pass one through NewAnthropicClient.
const DefaultModel = anthropic.ModelClaudeSonnet4_5

// DefaultMaxTokens bounds a single completion's output. The pipeline's
// prompts ask for short, structured answers, so this is generous rather
// than tight.
const DefaultMaxTokens = 2048

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	sdk       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicClient builds a client from an API key. model may be empty,
// in which case DefaultModel is used.
func NewAnthropicClient(apiKey string, model anthropic.Model) *AnthropicClient {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicClient{
		sdk:       anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
}

// Complete sends system and user as a single-turn message and returns the
// concatenated text of the response. It maps every failure into one of the
// three Client error kinds rather than letting an SDK-specific type leak
// out to callers.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	if !req.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, req.Deadline)
		defer cancel()
	}

	message, err := c.sdk.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", Timeout(err)
		}
		return "", Unavailable(err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", Malformed(errors.New("empty response content"))
	}
	return text, nil
}

var _ Client = (*AnthropicClient)(nil)
