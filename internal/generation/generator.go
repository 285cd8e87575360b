// Package generation wraps the external text-generation capability. It turns
// (input content, tone description, style profile) into a deterministic
// constraint specification and returns the generated post text. Only the
// request is constrained; the generated output is inherently variable.
package generation

import (
	"context"
	"strings"

	"github.com/fivedigital/contentflow/internal/llm"
)

// Generator produces style-conditioned posts via the LLM.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator on top of an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a post for the request. A transport failure or an empty
// response surfaces as *GenerationError.
func (g *Generator) Generate(ctx context.Context, req *Request) (string, error) {
	if strings.TrimSpace(req.InputContent) == "" {
		return "", &GenerationError{Message: "input content is empty"}
	}
	if req.Profile == nil {
		return "", &GenerationError{Message: "style profile is required"}
	}

	system := BuildConstraintSpec(req)
	user := buildUserPrompt(req)

	text, err := g.client.GenerateText(ctx, system, user, llm.TierGeneration)
	if err != nil {
		return "", &GenerationError{
			Message: "capability call failed",
			Cause:   err,
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &GenerationError{Message: "capability returned an empty post"}
	}
	return text, nil
}
