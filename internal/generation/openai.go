package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

const (
	baseMaxOutputTokens  int64 = 1024
	limitMaxOutputTokens int64 = 8192

	defaultModel = openai.ChatModelGPT5Mini2025_08_07
)

// OpenAIGenerator calls OpenAI's Responses API to transform text.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator builds a new generator instance. An empty model falls
// back to the default.
func NewOpenAIGenerator(apiKey string, model string) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("api key is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultModel
	}

	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Generate runs one generation request. The output token budget doubles on
// incomplete responses up to a hard limit.
func (g *OpenAIGenerator) Generate(
	ctx context.Context,
	text string,
	instruction string,
) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ServiceError{Err: errors.New("input text is empty")}
	}

	maxOutputTokens := baseMaxOutputTokens
	for {
		resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           shared.ResponsesModel(g.model),
			MaxOutputTokens: openai.Int(maxOutputTokens),
			Reasoning: responses.ReasoningParam{
				Effort: openai.ReasoningEffortLow,
			},
			Instructions: openai.String(instruction),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		})
		if err != nil {
			return "", classifyErr(err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limitMaxOutputTokens {
				maxOutputTokens *= 2
				if maxOutputTokens > limitMaxOutputTokens {
					maxOutputTokens = limitMaxOutputTokens
				}
				continue
			}
			return "", &ServiceError{Err: fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)}
		}

		output := strings.TrimSpace(resp.OutputText())
		if output == "" {
			return "", &ServiceError{Err: fmt.Errorf("output text is missing (status = %s)", resp.Status)}
		}
		return output, nil
	}
}

// classifyErr maps an openai-go failure onto the transient/permanent split.
// Anything without an HTTP status is a transport fault and counts as
// transient.
func classifyErr(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return &ServiceError{Transient: true, Err: err}
	}

	switch {
	case apierr.StatusCode == http.StatusRequestTimeout,
		apierr.StatusCode == http.StatusConflict,
		apierr.StatusCode == http.StatusTooManyRequests,
		apierr.StatusCode >= http.StatusInternalServerError:
		return &ServiceError{Transient: true, Err: err}
	default:
		return &ServiceError{Err: err}
	}
}
