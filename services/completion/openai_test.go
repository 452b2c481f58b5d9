package completionsvc

import (
	"context"
	"testing"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakouedu/lakou/core"
)

// fakeChatClient scripts the Chat Completions API and records the last params.
type fakeChatClient struct {
	resp *openai.ChatCompletion
	err  error

	lastParams openai.ChatCompletionNewParams
	calls      int
}

func (f *fakeChatClient) New(_ context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.calls++
	f.lastParams = body
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func completionWith(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func testConf() core.CompletionConfig {
	return core.CompletionConfig{
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		MaxTokens:   300,
		Temperature: 0.7,
		Timeout:     time.Second,
	}
}

func Test_openAIService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the trimmed reply", func(t *testing.T) {
		fake := &fakeChatClient{resp: completionWith("  Here you go.\n")}
		svc := NewOpenAIService(testConf(), WithChatClient(fake))

		reply, err := svc.Complete(ctx, "system prompt", "user message")
		require.NoError(t, err)
		assert.Equal(t, "Here you go.", reply)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("passes model and sampling params through", func(t *testing.T) {
		fake := &fakeChatClient{resp: completionWith("ok")}
		svc := NewOpenAIService(testConf(), WithChatClient(fake))

		_, err := svc.Complete(ctx, "system prompt", "user message")
		require.NoError(t, err)

		assert.EqualValues(t, "gpt-4o-mini", fake.lastParams.Model)
		assert.Len(t, fake.lastParams.Messages, 2)
		assert.EqualValues(t, 300, fake.lastParams.MaxCompletionTokens.Value)
		assert.EqualValues(t, 0.7, fake.lastParams.Temperature.Value)
	})

	t.Run("wraps upstream errors", func(t *testing.T) {
		fake := &fakeChatClient{err: errors.New("upstream 503")}
		svc := NewOpenAIService(testConf(), WithChatClient(fake))

		_, err := svc.Complete(ctx, "system prompt", "user message")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chat completion")
		assert.Contains(t, err.Error(), "upstream 503")
	})

	t.Run("errors on an empty choice list", func(t *testing.T) {
		fake := &fakeChatClient{resp: &openai.ChatCompletion{}}
		svc := NewOpenAIService(testConf(), WithChatClient(fake))

		_, err := svc.Complete(ctx, "system prompt", "user message")
		assert.EqualError(t, err, "chat completion returned no choices")
	})

	t.Run("errors on a blank reply", func(t *testing.T) {
		fake := &fakeChatClient{resp: completionWith("   \n\t")}
		svc := NewOpenAIService(testConf(), WithChatClient(fake))

		_, err := svc.Complete(ctx, "system prompt", "user message")
		assert.EqualError(t, err, "chat completion returned an empty response")
	})
}

func Test_DummyService(t *testing.T) {
	svc := &DummyService{Reply: "scripted"}

	reply, err := svc.Complete(context.Background(), "s", "m")
	require.NoError(t, err)
	assert.Equal(t, "scripted", reply)
	assert.Equal(t, 1, svc.Calls())
}
