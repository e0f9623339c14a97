package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// AnthropicClient wraps the Anthropic SDK. The output schema is offered as a
// submit_<flow> tool; a JSON object in the text reply is accepted as well.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates a generator backed by Anthropic Claude or a
// compatible provider reachable at baseURL.
func NewAnthropicClient(apiKey, model, baseURL string, maxTokens int) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-6"
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *AnthropicClient) Model() string { return a.model }

func submitToolName(flow string) string {
	name := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(flow))
	if name == "" {
		name = "result"
	}
	return "submit_" + name
}

func (a *AnthropicClient) Generate(ctx context.Context, req Request) (*Response, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(req.Media)+1)
	for _, m := range req.Media {
		blocks = append(blocks, anthropic.NewImageBlockBase64(m.MIMEType, base64.StdEncoding.EncodeToString(m.Data)))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(a.model)),
		MaxTokens: anthropic.F(int64(a.maxTokens)),
		Messages:  anthropic.F([]anthropic.MessageParam{anthropic.NewUserMessage(blocks...)}),
	}
	if req.System != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(req.System),
		})
	}

	toolName := submitToolName(req.Flow)
	if req.OutputSchema != nil {
		params.Tools = anthropic.F([]anthropic.ToolUnionUnionParam{
			anthropic.ToolParam{
				Name:        anthropic.String(toolName),
				Description: anthropic.String("Submit the final answer. The input must match the schema exactly."),
				InputSchema: anthropic.F[interface{}](req.OutputSchema.ToMap()),
			},
		})
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		switch b := block.AsUnion().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			if b.Name != toolName {
				log.Warn().Str("tool", b.Name).Str("flow", req.Flow).Msg("model called an unknown tool")
				continue
			}
			if !json.Valid(b.Input) {
				return nil, fmt.Errorf("%s: tool input is not valid JSON", toolName)
			}
			return &Response{
				JSON:       json.RawMessage(b.Input),
				Provider:   "anthropic",
				Model:      a.model,
				StopReason: string(resp.StopReason),
			}, nil
		}
	}

	log.Debug().
		Str("flow", req.Flow).
		Str("stop_reason", string(resp.StopReason)).
		Int("text_len", text.Len()).
		Msg("no tool call, extracting JSON from text")

	raw, err := ExtractJSON(text.String())
	if err != nil {
		return nil, err
	}
	return &Response{
		JSON:       raw,
		Provider:   "anthropic",
		Model:      a.model,
		StopReason: string(resp.StopReason),
	}, nil
}
