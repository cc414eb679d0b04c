// File path: internal/enhance/local.go
package enhance

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is a deterministic offline fallback. It splits the raw notes
// in half and emits them under the two expected section headings, so the
// rest of the pipeline behaves exactly as with a real provider.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Enhance(ctx context.Context, req Request) (string, error) {
	raw := strings.TrimSpace(req.RawText)
	if raw == "" {
		return "", fmt.Errorf("no raw text provided")
	}
	lines := strings.Split(raw, "\n")
	half := (len(lines) + 1) / 2
	first := strings.TrimSpace(strings.Join(lines[:half], "\n"))
	second := strings.TrimSpace(strings.Join(lines[half:], "\n"))
	if second == "" {
		second = first
	}
	return fmt.Sprintf("%s:\n%s\n\n%s:\n%s\n", SectionExercise1, first, SectionExercise2, second), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
