package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModels is the preference-ordered fallback list. Hosted gateways
// rotate model availability, so each entry is tried until one answers.
var DefaultModels = []string{
	"claude-3-5-sonnet-20240620",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// DefaultMaxTokens bounds the completion size requested from the model.
const DefaultMaxTokens = 4000

// ModelUnavailableError reports that every candidate model was rejected as
// unknown by the backend. Err carries the last underlying rejection.
type ModelUnavailableError struct {
	Models []string
	Err    error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("no model available (tried %s): %v", strings.Join(e.Models, ", "), e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// Completion is a raw model answer plus the model that produced it.
type Completion struct {
	Text  string
	Model string
}

// Generator obtains one text completion from the first model on the list the
// backend actually serves. It holds no cross-call state.
type Generator struct {
	Client Client
	// Models overrides DefaultModels when non-empty.
	Models []string
	// MaxTokens overrides DefaultMaxTokens when positive.
	MaxTokens int
}

// Complete sends prompt as a single user-role message. A "model not found"
// rejection advances to the next model on the list; any other failure is
// returned immediately without trying further models. When the whole list is
// exhausted the result is a *ModelUnavailableError wrapping the last cause.
func (g *Generator) Complete(ctx context.Context, prompt string) (Completion, error) {
	if g.Client == nil {
		return Completion{}, errors.New("generator not configured")
	}
	models := g.Models
	if len(models) == 0 {
		models = DefaultModels
	}
	maxTokens := g.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var lastErr error
	for _, model := range models {
		req := openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: maxTokens,
			N:         1,
		}
		resp, err := g.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			if isModelNotFound(err) {
				lastErr = err
				continue
			}
			return Completion{}, fmt.Errorf("completion call with %s: %w", model, err)
		}
		if len(resp.Choices) == 0 {
			return Completion{}, fmt.Errorf("model %s returned no choices", model)
		}
		return Completion{
			Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
			Model: model,
		}, nil
	}
	return Completion{}, &ModelUnavailableError{Models: models, Err: lastErr}
}

// isModelNotFound classifies rejections that should advance the fallback
// list rather than abort the call.
func isModelNotFound(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusNotFound {
			return true
		}
		if code, ok := apiErr.Code.(string); ok && code == "model_not_found" {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not_found") || strings.Contains(msg, "404")
}
