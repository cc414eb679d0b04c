// File path: internal/enhance/provider.go

// Package enhance wraps the external text-enhancement service. Given the raw
// exercise notes plus session metadata it returns polished prose partitioned
// into the two exercise sections of a training report.
package enhance

import (
	"context"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/dca-labs/reportbot/internal/common"
)

// Request carries the session fields the enhancement prompt is built from.
type Request struct {
	RawText     string
	Date        string
	ManagerName string
	ForceName   string
	Location    string
}

// Provider produces enhanced report prose for a request. Implementations
// must return text parseable by ParseSections for well-formed input.
type Provider interface {
	Enhance(ctx context.Context, req Request) (string, error)
	Name() string
}

// NewProvider selects the OpenAI provider when OPENAI_API_KEY is set and
// falls back to the deterministic local provider otherwise.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("enhance: OPENAI_API_KEY not set; falling back to local provider")
		return NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("enhance: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("enhance: OpenAI provider selected")
	return NewOpenAIProvider(client)
}
