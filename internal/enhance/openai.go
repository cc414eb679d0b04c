// File path: internal/enhance/openai.go
package enhance

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"

	"github.com/dca-labs/reportbot/internal/common"
)

const systemPrompt = "You are a military training report writer for DCA. " +
	"Rewrite the raw exercise notes into formal, polished report prose. " +
	"Structure the output as exactly two sections, headed \"Exercise 1:\" and " +
	"\"Exercise 2:\", each covering the exercise summary, what went well and " +
	"where the force must improve. Do not add any other headings."

// OpenAIProvider enhances report text through the OpenAI chat completion API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider wraps the given client, reading the chat model from
// OPENAI_CHAT_MODEL with a gpt-4o default.
func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL"))
	if model == "" {
		model = "gpt-4o"
	}
	common.Logger().Info("enhance: OpenAI provider configured", "chat_model", model)
	return &OpenAIProvider{client: client, model: model}
}

func (o *OpenAIProvider) Enhance(ctx context.Context, req Request) (string, error) {
	logger := common.Logger()
	logger.Debug("enhance: sending chat completion request", "model", o.model, "force", req.ForceName)
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
	})
	if err != nil {
		logger.Error("enhance: chat completion failed", "error", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	logger.Debug("enhance: chat completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
