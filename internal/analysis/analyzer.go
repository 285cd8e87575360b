// Package analysis wraps the external text-analysis capability behind the
// StyleAnalyzer contract: raw sample text in, validated StyleProfile payload
// out. Responses are schema-checked before anything downstream sees them.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fivedigital/contentflow/internal/llm"
	"github.com/fivedigital/contentflow/internal/prompts"
	"github.com/fivedigital/contentflow/internal/schemas"
	"github.com/fivedigital/contentflow/internal/types"
)

// Analyzer converts sample posts into a style profile via the LLM.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an Analyzer on top of an LLM client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze runs the PPP style analysis over the concatenated,
// paragraph-delimited sample text. The response is trusted only after it
// passes the JSON Schema and the distribution invariants.
func (a *Analyzer) Analyze(ctx context.Context, sampleText string) (*types.StyleProfilePayload, error) {
	if strings.TrimSpace(sampleText) == "" {
		return nil, &APICallError{Message: "sample text is empty"}
	}

	system := prompts.MustGet("analysis.json", "style-analysis-system")
	user := prompts.Format(prompts.MustGet("analysis.json", "style-analysis-user"), map[string]string{
		"SampleTexts": sampleText,
	})

	responseText, err := a.client.GenerateJSON(ctx, system, user, llm.TierAnalysis)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate analysis",
			Cause:   err,
		}
	}

	return decodePayload([]byte(responseText))
}

// decodePayload validates and decodes a raw analysis response.
func decodePayload(raw []byte) (*types.StyleProfilePayload, error) {
	if err := schemas.ValidateStyleProfile(raw); err != nil {
		return nil, &MalformedAnalysisError{
			Message: "response failed schema validation",
			Cause:   err,
		}
	}

	var payload types.StyleProfilePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &MalformedAnalysisError{
			Message: "response is not valid JSON",
			Cause:   err,
		}
	}

	// Schema checks shape and ranges; the bucket-sum invariant needs the
	// decoded values.
	if err := payload.Validate(); err != nil {
		return nil, &MalformedAnalysisError{
			Message: "response violates profile invariants",
			Cause:   err,
		}
	}

	return &payload, nil
}
