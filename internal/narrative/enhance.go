package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// Enhancer rewrites a templated description. Implementations must return
// the input unchanged when they cannot produce a better one.
type Enhancer interface {
	Enhance(ctx context.Context, text, region string) string
}

// Passthrough returns the text as given.
type Passthrough struct{}

func (Passthrough) Enhance(_ context.Context, text, _ string) string { return text }

const DefaultModel = "claude-sonnet-4-20250514"

const enhancePrompt = `You are a League of Legends lore expert. Create a 2-4 sentence player description (max 250 tokens) that:
  1. Connects their %[1]s region identity with their playstyle
  2. Describes the player AS IF they embody their main champion's essence
  3. Focuses on the PLAYER'S behavior and tendencies, not the champion's lore
  4. Uses vivid, immersive language that feels authentic to %[1]s's culture
  Transform this draft into a compelling narrative. Keep it between 2-4 sentences only:%[2]s`

// AnthropicEnhancer rewrites descriptions with a Claude model.
type AnthropicEnhancer struct {
	client anthropic.Client
	model  string
	log    *zap.Logger
}

// NewAnthropicEnhancer builds an enhancer. Extra request options (base URL,
// retries) are passed through to the SDK client.
func NewAnthropicEnhancer(apiKey, model string, log *zap.Logger, opts ...option.RequestOption) *AnthropicEnhancer {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicEnhancer{
		client: anthropic.NewClient(opts...),
		model:  model,
		log:    log,
	}
}

// Enhance returns the model's rewrite, or text on any failure.
func (e *AnthropicEnhancer) Enhance(ctx context.Context, text, region string) string {
	out, err := e.rewrite(ctx, text, region)
	if err != nil {
		e.log.Warn("narrative enhancement failed, using template", zap.String("region", region), zap.Error(err))
		return text
	}
	return out
}

func (e *AnthropicEnhancer) rewrite(ctx context.Context, text, region string) (string, error) {
	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(enhancePrompt, region, text))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages: %w", err)
	}
	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("response has no text content")
}
