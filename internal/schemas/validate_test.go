package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() map[string]any {
	return map[string]any{
		"quantitative": map[string]any{
			"avgWordsPerPost":           150,
			"avgWordsPerSentence":       12,
			"avgSentencesPerParagraph":  2.5,
			"avgLinesPerParagraph":      3,
			"avgEmojisPerPost":          4,
			"emojiToTextRatio":          0.03,
			"topEmojis":                 []string{"🚀", "💡"},
			"topWords":                  []string{"Team", "Wachstum"},
			"avgLineBreaksPerPost":      8,
			"avgParagraphBreaksPerPost": 4,
			"sentenceLengthDistribution": map[string]any{
				"under3Words": 10,
				"words4to8":   30,
				"words9to15":  35,
				"words16to25": 20,
				"over25Words": 5,
			},
		},
		"qualitative": map[string]any{
			"tonality":           "motivierend",
			"rhythm":             "kurze Absätze",
			"communicationStyle": "storytelling",
			"beliefs":            "Wachstum",
		},
	}
}

func marshal(t *testing.T, doc any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestValidateStyleProfile_Valid(t *testing.T) {
	assert.NoError(t, ValidateStyleProfile(marshal(t, validDoc())))
}

func TestValidateStyleProfile_MissingQuantitativeField(t *testing.T) {
	doc := validDoc()
	delete(doc["quantitative"].(map[string]any), "avgWordsPerPost")

	err := ValidateStyleProfile(marshal(t, doc))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateStyleProfile_NegativeMetric(t *testing.T) {
	doc := validDoc()
	doc["quantitative"].(map[string]any)["avgEmojisPerPost"] = -2

	assert.Error(t, ValidateStyleProfile(marshal(t, doc)))
}

func TestValidateStyleProfile_TooManyEmojis(t *testing.T) {
	doc := validDoc()
	doc["quantitative"].(map[string]any)["topEmojis"] = []string{"🚀", "💡", "✅", "🔥", "🎯", "🙌"}

	assert.Error(t, ValidateStyleProfile(marshal(t, doc)))
}

func TestValidateStyleProfile_MissingDistributionBucket(t *testing.T) {
	doc := validDoc()
	dist := doc["quantitative"].(map[string]any)["sentenceLengthDistribution"].(map[string]any)
	delete(dist, "over25Words")

	assert.Error(t, ValidateStyleProfile(marshal(t, doc)))
}

func TestValidateStyleProfile_WrongType(t *testing.T) {
	doc := validDoc()
	doc["qualitative"].(map[string]any)["tonality"] = 42

	assert.Error(t, ValidateStyleProfile(marshal(t, doc)))
}

func TestValidateStyleProfile_NotJSON(t *testing.T) {
	err := ValidateStyleProfile([]byte("not json at all"))
	assert.Error(t, err)
}
