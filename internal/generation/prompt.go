package generation

import (
	"strconv"
	"strings"

	"github.com/fivedigital/contentflow/internal/prompts"
	"github.com/fivedigital/contentflow/internal/types"
)

// Request carries everything the generation capability needs for one call.
type Request struct {
	InputContent    string
	EmployeeName    string
	ToneDescription string
	Profile         *types.StyleProfile
}

// BuildConstraintSpec renders the ghostwriting system prompt from the style
// profile. The rendering is deterministic: the same request always produces
// the same constraint text.
func BuildConstraintSpec(req *Request) string {
	quant := req.Profile.Quantitative
	qual := req.Profile.Qualitative
	dist := quant.SentenceLengthDistribution

	template := prompts.MustGet("generation.json", "ghostwrite-system")
	return prompts.Format(template, map[string]string{
		"Name":                      req.EmployeeName,
		"ToneDescription":           req.ToneDescription,
		"AvgWordsPerPost":           formatMetric(quant.AvgWordsPerPost),
		"AvgWordsPerSentence":       formatMetric(quant.AvgWordsPerSentence),
		"AvgSentencesPerParagraph":  formatMetric(quant.AvgSentencesPerParagraph),
		"AvgEmojisPerPost":          formatMetric(quant.AvgEmojisPerPost),
		"AvgLineBreaksPerPost":      formatMetric(quant.AvgLineBreaksPerPost),
		"AvgParagraphBreaksPerPost": formatMetric(quant.AvgParagraphBreaksPerPost),
		"Under3Words":               formatMetric(dist.Under3Words),
		"Words4To8":                 formatMetric(dist.Words4To8),
		"Words9To15":                formatMetric(dist.Words9To15),
		"Words16To25":               formatMetric(dist.Words16To25),
		"Over25Words":               formatMetric(dist.Over25Words),
		"TopEmojis":                 strings.Join(quant.TopEmojis, ", "),
		"TopWords":                  strings.Join(quant.TopWords, ", "),
		"Tonality":                  qual.Tonality,
		"Rhythm":                    qual.Rhythm,
		"CommunicationStyle":        qual.CommunicationStyle,
		"Beliefs":                   qual.Beliefs,
	})
}

// buildUserPrompt renders the per-call instruction with the input content.
func buildUserPrompt(req *Request) string {
	template := prompts.MustGet("generation.json", "ghostwrite-user")
	return prompts.Format(template, map[string]string{
		"Name":         req.EmployeeName,
		"InputContent": req.InputContent,
	})
}

// formatMetric renders a metric with the shortest exact decimal
// representation, so identical profiles always produce identical prompts.
func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
