package types

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Size limits for the vocabulary lists produced by style analysis.
const (
	MaxTopEmojis = 5
	MaxTopWords  = 10
)

// bucketSumTolerance is how far the five distribution buckets may drift
// from 100 due to rounding in the analysis response.
const bucketSumTolerance = 1.0

// SentenceLengthDistribution describes how an author's sentences are
// distributed over five length buckets, in percent.
type SentenceLengthDistribution struct {
	Under3Words float64 `json:"under3Words" validate:"gte=0"`
	Words4To8   float64 `json:"words4to8" validate:"gte=0"`
	Words9To15  float64 `json:"words9to15" validate:"gte=0"`
	Words16To25 float64 `json:"words16to25" validate:"gte=0"`
	Over25Words float64 `json:"over25Words" validate:"gte=0"`
}

// Sum returns the total of the five buckets.
func (d SentenceLengthDistribution) Sum() float64 {
	return d.Under3Words + d.Words4To8 + d.Words9To15 + d.Words16To25 + d.Over25Words
}

// QuantitativeProfile holds the measurable writing metrics extracted from
// an employee's sample posts.
type QuantitativeProfile struct {
	AvgWordsPerPost          float64                    `json:"avgWordsPerPost" validate:"gte=0"`
	AvgWordsPerSentence      float64                    `json:"avgWordsPerSentence" validate:"gte=0"`
	AvgSentencesPerParagraph float64                    `json:"avgSentencesPerParagraph" validate:"gte=0"`
	AvgLinesPerParagraph     float64                    `json:"avgLinesPerParagraph" validate:"gte=0"`
	AvgEmojisPerPost         float64                    `json:"avgEmojisPerPost" validate:"gte=0"`
	EmojiToTextRatio         float64                    `json:"emojiToTextRatio" validate:"gte=0"`
	TopEmojis                []string                   `json:"topEmojis" validate:"max=5"`
	TopWords                 []string                   `json:"topWords" validate:"max=10"`
	AvgLineBreaksPerPost     float64                    `json:"avgLineBreaksPerPost" validate:"gte=0"`
	AvgParagraphBreaksPerPost float64                   `json:"avgParagraphBreaksPerPost" validate:"gte=0"`
	SentenceLengthDistribution SentenceLengthDistribution `json:"sentenceLengthDistribution"`
}

// QualitativeProfile holds the free-text style descriptors from analysis.
type QualitativeProfile struct {
	Tonality           string `json:"tonality" validate:"required"`
	Rhythm             string `json:"rhythm" validate:"required"`
	CommunicationStyle string `json:"communicationStyle" validate:"required"`
	Beliefs            string `json:"beliefs" validate:"required"`
}

// StyleProfilePayload is the validated output of a style analysis, before
// it is attached to an employee and persisted.
type StyleProfilePayload struct {
	Quantitative QuantitativeProfile `json:"quantitative"`
	Qualitative  QualitativeProfile  `json:"qualitative"`
}

// StyleProfile is a persisted style parametrization for one employee.
// At most one profile exists per employee; writes replace the whole record.
type StyleProfile struct {
	ID           uuid.UUID           `json:"id"`
	EmployeeID   uuid.UUID           `json:"employeeId"`
	AnalyzedAt   time.Time           `json:"analyzedAt"`
	Quantitative QuantitativeProfile `json:"quantitative"`
	Qualitative  QualitativeProfile  `json:"qualitative"`
}

// Validate checks the payload invariants: all numeric fields non-negative,
// vocabulary lists within size limits, and the five sentence-length buckets
// summing to 100 within rounding tolerance.
func (p *StyleProfilePayload) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}

	sum := p.Quantitative.SentenceLengthDistribution.Sum()
	if math.Abs(sum-100) > bucketSumTolerance {
		return fmt.Errorf("sentence length distribution sums to %.2f, expected 100±%.0f", sum, bucketSumTolerance)
	}
	return nil
}

// Validate checks the profile invariants. The payload rules apply unchanged.
func (p *StyleProfile) Validate() error {
	payload := StyleProfilePayload{Quantitative: p.Quantitative, Qualitative: p.Qualitative}
	return payload.Validate()
}
