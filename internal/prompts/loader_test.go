package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AnalysisPrompts(t *testing.T) {
	ClearCache()

	system, err := Get("analysis.json", "style-analysis-system")
	require.NoError(t, err)
	assert.Contains(t, system, "QUANTITATIVE ANALYSE")
	assert.Contains(t, system, "sentenceLengthDistribution")

	user, err := Get("analysis.json", "style-analysis-user")
	require.NoError(t, err)
	assert.Contains(t, user, "{{.SampleTexts}}")
}

func TestGet_GenerationPrompts(t *testing.T) {
	system, err := Get("generation.json", "ghostwrite-system")
	require.NoError(t, err)
	assert.Contains(t, system, "{{.ToneDescription}}")
	assert.Contains(t, system, "{{.AvgWordsPerPost}}")
	assert.Contains(t, system, "Schweizer Rechtschreibung")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("analysis.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Hallo {{.Name}}, {{.N}} Wörter", map[string]string{
		"Name": "Anna",
		"N":    "150",
	})
	assert.Equal(t, "Hallo Anna, 150 Wörter", out)
	assert.False(t, strings.Contains(out, "{{"))
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("analysis.json", "definitely-missing")
	})
}
