package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/types"
)

// Params configures a chat-completions advisor. Endpoint is optional: when
// set, the client talks to that base URL instead of api.openai.com, which is
// how Gemini is reached through its OpenAI-compatible surface.
type Params struct {
	APIKey      string
	Model       string
	Endpoint    string
	MaxTokens   int
	Temperature float32
	System      string
}

// ChatAdvisor asks an OpenAI-compatible chat-completions API for a trading
// decision. The reply is returned raw; nothing here trusts it.
type ChatAdvisor struct {
	client *openai.Client
	p      Params
}

var _ interfaces.Advisor = (*ChatAdvisor)(nil)

func NewChatAdvisor(p Params) (*ChatAdvisor, error) {
	if p.APIKey == "" {
		return nil, errors.New("advisor: API key missing")
	}
	if p.Model == "" {
		return nil, errors.New("advisor: model missing")
	}

	cfg := openai.DefaultConfig(p.APIKey)
	if p.Endpoint != "" {
		cfg.BaseURL = p.Endpoint
	}
	return &ChatAdvisor{
		client: openai.NewClientWithConfig(cfg),
		p:      p,
	}, nil
}

func (a *ChatAdvisor) Advise(ctx context.Context, bundle types.AdvisoryContext) ([]byte, error) {
	prompt, err := BuildUserPrompt(bundle)
	if err != nil {
		return nil, err
	}

	userMsg := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	}
	if bundle.Chart != nil && bundle.Chart.PNGBase64 != "" {
		// Multimodal form: the chart rides along as an inline data URI.
		userMsg = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: prompt},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: "data:image/png;base64," + bundle.Chart.PNGBase64,
					},
				},
			},
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.p.System},
			userMsg,
		},
		MaxTokens:   a.p.MaxTokens,
		Temperature: a.p.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("advisor: no choices in response")
	}

	return ExtractJSON(resp.Choices[0].Message.Content), nil
}
