package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

// chatRequest is the Chat Completions request body spoken by OpenAI and
// OpenRouter.
type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      *float64      `json:"temperature,omitempty"`
	TopP             *float64      `json:"top_p,omitempty"`
	MaxTokens        *int64        `json:"max_tokens,omitempty"`
	PresencePenalty  *float64      `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64      `json:"frequency_penalty,omitempty"`
	Stop             *string       `json:"stop,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Chat Completions response body. Some gateways return
// an error object with a 200 status, so Error is decoded as well.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error json.RawMessage `json:"error"`
}

func newChatRequest(model, prompt string, opts parameter.Params) chatRequest {
	return chatRequest{
		Model:            model,
		Messages:         []chatMessage{{Role: "user", Content: prompt}},
		Temperature:      floatParam(opts, ParamTemperature),
		TopP:             floatParam(opts, ParamTopP),
		MaxTokens:        intParam(opts, ParamMaxTokens),
		PresencePenalty:  floatParam(opts, ParamPresencePenalty),
		FrequencyPenalty: floatParam(opts, ParamFrequencyPenalty),
		Stop:             stringParam(opts, ParamStop),
	}
}

// chatCompletion posts req to /chat/completions and normalizes the reply.
func (b *base) chatCompletion(ctx context.Context, header http.Header, req chatRequest) (*Response, error) {
	raw, err := b.send(ctx, http.MethodPost, "/chat/completions", header, req)
	if err != nil {
		return nil, err
	}
	var cr chatResponse
	if err := b.decode(raw, &cr); err != nil {
		return nil, err
	}

	if len(cr.Error) > 0 && string(cr.Error) != "null" {
		return nil, &APIError{Provider: b.name, StatusCode: http.StatusOK, Message: errorMessage(http.StatusOK, raw), Raw: raw}
	}

	return parseChatResponse(&cr), nil
}

func parseChatResponse(cr *chatResponse) *Response {
	resp := &Response{Choices: make([]Choice, 0, len(cr.Choices))}
	for _, c := range cr.Choices {
		role := c.Message.Role
		if role == "" {
			role = "assistant"
		}
		resp.Choices = append(resp.Choices, Choice{
			Message:      Message{Content: c.Message.Content, Role: role},
			FinishReason: c.FinishReason,
		})
	}

	if cr.Usage != nil {
		u := &Usage{
			PromptTokens:     cr.Usage.PromptTokens,
			CompletionTokens: cr.Usage.CompletionTokens,
			TotalTokens:      cr.Usage.TotalTokens,
		}
		if u.TotalTokens == 0 {
			u.TotalTokens = u.PromptTokens + u.CompletionTokens
		}
		resp.Usage = u
	}
	return resp
}
