package completionsvc

import (
	"context"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/pkg/errors"

	"github.com/lakouedu/lakou/core"
	"github.com/lakouedu/lakou/core/assistant"
)

type chatCompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Option configures the OpenAI service.
type Option func(*openAIService)

// WithChatClient injects a custom Chat Completions client (primarily for tests).
func WithChatClient(chat chatCompletionClient) Option {
	return func(svc *openAIService) {
		if chat != nil {
			svc.chat = chat
		}
	}
}

type openAIService struct {
	conf core.CompletionConfig
	chat chatCompletionClient
}

var _ assistant.Completer = (*openAIService)(nil)

// NewOpenAIService returns an assistant.Completer backed by the hosted
// chat-completions API. A single request per call, no retries: a slow or
// failing upstream is expected to degrade to the assistant's static
// fallback rather than stall the conversation.
func NewOpenAIService(conf core.CompletionConfig, opts ...Option) *openAIService {
	svc := &openAIService{conf: conf}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.chat == nil {
		clientOpts := []option.RequestOption{option.WithAPIKey(conf.APIKey)}
		if conf.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(conf.BaseURL))
		}
		client := openai.NewClient(clientOpts...)
		service := client.Chat.Completions
		svc.chat = &service
	}
	return svc
}

func (svc *openAIService) Complete(ctx context.Context, system, message string) (string, error) {
	// own short deadline, separate from the request timeout
	if svc.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.conf.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(svc.conf.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(message),
		},
	}
	if svc.conf.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(svc.conf.MaxTokens))
	}
	if svc.conf.Temperature > 0 {
		params.Temperature = openai.Float(svc.conf.Temperature)
	}

	resp, err := svc.chat.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("chat completion returned an empty response")
	}
	return reply, nil
}
