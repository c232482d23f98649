package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Temperature is the sampling temperature of every summary request.
const Temperature = 0.7

var ErrMissingAPIKey = errors.New("LLM API key is not configured")

// OpenAISummarizer calls a Chat Completions compatible endpoint to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
	apiKey string
}

// NewOpenAISummarizer builds a new summarizer instance. An empty baseURL keeps
// the SDK default. SDK retries are disabled.
func NewOpenAISummarizer(apiKey string, baseURL string, model string) (*OpenAISummarizer, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	apiKey = strings.TrimSpace(apiKey)

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAISummarizer{
		client: openai.NewClient(opts...),
		model:  model,
		apiKey: apiKey,
	}, nil
}

// Summarize sends the article wrapped in PromptTemplate and returns the trimmed reply.
func (s *OpenAISummarizer) Summarize(ctx context.Context, article string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(article)),
		},
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response has no choices (model = %s)", resp.Model)
	}

	choice := resp.Choices[0]
	summary := strings.TrimSpace(choice.Message.Content)
	if summary == "" {
		return "", fmt.Errorf("output text is missing (finishReason = %s)", choice.FinishReason)
	}

	return summary, nil
}
