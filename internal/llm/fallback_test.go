package llm

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// scriptedClient rejects the models in notFound with a 404 API error and
// answers everything else with content.
type scriptedClient struct {
	notFound map[string]bool
	fatal    error
	content  string
	calls    []string
}

func (c *scriptedClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.calls = append(c.calls, req.Model)
	if c.fatal != nil {
		return openai.ChatCompletionResponse{}, c.fatal
	}
	if c.notFound[req.Model] {
		return openai.ChatCompletionResponse{}, &openai.APIError{
			Code:           "model_not_found",
			Message:        "model " + req.Model + " does not exist",
			HTTPStatusCode: http.StatusNotFound,
		}
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content},
		}},
	}, nil
}

func TestComplete_FallsBackInOrder(t *testing.T) {
	sc := &scriptedClient{notFound: map[string]bool{"a": true, "b": true}, content: "{}"}
	g := &Generator{Client: sc, Models: []string{"a", "b", "c"}}

	got, err := g.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "c" || got.Text != "{}" {
		t.Fatalf("expected answer from c, got %+v", got)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(sc.calls, want) {
		t.Fatalf("expected attempts %v, got %v", want, sc.calls)
	}
}

func TestComplete_AllModelsExhausted(t *testing.T) {
	sc := &scriptedClient{notFound: map[string]bool{"a": true, "b": true, "c": true}}
	g := &Generator{Client: sc, Models: []string{"a", "b", "c"}}

	_, err := g.Complete(context.Background(), "prompt")
	var unavailable *ModelUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *ModelUnavailableError, got %v", err)
	}
	var apiErr *openai.APIError
	if !errors.As(unavailable.Err, &apiErr) {
		t.Fatalf("expected last cause to be the API error, got %v", unavailable.Err)
	}
	if want := "model c does not exist"; apiErr.Message != want {
		t.Fatalf("expected last cause from c, got %q", apiErr.Message)
	}
}

func TestComplete_FatalErrorPropagatesImmediately(t *testing.T) {
	boom := errors.New("rate limited")
	sc := &scriptedClient{fatal: boom}
	g := &Generator{Client: sc, Models: []string{"a", "b"}}

	_, err := g.Complete(context.Background(), "prompt")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fatal error, got %v", err)
	}
	if len(sc.calls) != 1 {
		t.Fatalf("expected a single attempt, got %v", sc.calls)
	}
}

func TestComplete_SendsSingleUserMessageWithBudget(t *testing.T) {
	var lastReq openai.ChatCompletionRequest
	sc := &capturingClient{onReq: func(req openai.ChatCompletionRequest) { lastReq = req }, content: "ok"}
	g := &Generator{Client: sc, Models: []string{"m"}}

	if _, err := g.Complete(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lastReq.Messages) != 1 || lastReq.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Fatalf("expected one user message, got %+v", lastReq.Messages)
	}
	if lastReq.Messages[0].Content != "hello" {
		t.Fatalf("expected prompt passthrough, got %q", lastReq.Messages[0].Content)
	}
	if lastReq.MaxTokens != DefaultMaxTokens {
		t.Fatalf("expected default max tokens, got %d", lastReq.MaxTokens)
	}
}

func TestIsModelNotFound(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&openai.APIError{HTTPStatusCode: http.StatusNotFound}, true},
		{&openai.APIError{Code: "model_not_found", HTTPStatusCode: http.StatusBadRequest}, true},
		{errors.New("status 404 returned"), true},
		{errors.New("rate limit exceeded"), false},
	}
	for _, c := range cases {
		if got := isModelNotFound(c.err); got != c.want {
			t.Fatalf("isModelNotFound(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

// capturingClient records the request and answers with fixed content.
type capturingClient struct {
	onReq   func(openai.ChatCompletionRequest)
	content string
}

func (c *capturingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.onReq != nil {
		c.onReq(req)
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content},
		}},
	}, nil
}
