package analysis

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// NewAnalyzer selects the engine for the configured provider. A gemini
// provider without a working client is a hard error, never a silent downgrade
// to the local engine.
func NewAnalyzer(provider, model string, maxExamples int, client *genai.Client) (Analyzer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "local":
		return &LocalEngine{MaxExamples: maxExamples}, nil
	case "gemini":
		if client == nil {
			return nil, fmt.Errorf("analysis: gemini provider configured without a client")
		}
		if strings.TrimSpace(model) == "" {
			return nil, fmt.Errorf("analysis: gemini provider needs a model name")
		}
		return &GeminiEngine{Client: client, Model: model}, nil
	default:
		return nil, fmt.Errorf("analysis: unknown provider %q", provider)
	}
}
