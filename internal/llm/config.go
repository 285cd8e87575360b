// Package llm provides centralized LLM configuration and client abstractions.
// The engine's analysis and generation adapters are the only consumers.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierAnalysis is for structured extraction: style analysis JSON output
	TierAnalysis ModelTier = "analysis"
	// TierGeneration is for creative writing: style-conditioned post generation
	TierGeneration ModelTier = "generation"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperatures per tier; analysis wants near-deterministic output,
	// generation wants variation between posts.
	Temperatures map[ModelTier]float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierAnalysis:   "gemini-2.5-flash",
			TierGeneration: "gemini-2.5-pro",
		},
		Temperatures: map[ModelTier]float32{
			TierAnalysis:   0.1,
			TierGeneration: 0.8,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback: any configured model is better than none
	for _, model := range c.Models {
		return model
	}
	return ""
}

// GetTemperature returns the sampling temperature for a given tier
func (c *Config) GetTemperature(tier ModelTier) float32 {
	if temp, ok := c.Temperatures[tier]; ok {
		return temp
	}
	return 0.1
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string),
		Temperatures: make(map[ModelTier]float32),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.Temperatures {
		newConfig.Temperatures[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
