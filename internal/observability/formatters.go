// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fivedigital/contentflow/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStyleProfile outputs a human-readable summary of an analyzed style
// profile.
func (p *Printer) PrintStyleProfile(profile *types.StyleProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	q := profile.Quantitative
	sb.WriteString(fmt.Sprintf("Avg words/post:     %.0f\n", q.AvgWordsPerPost))
	sb.WriteString(fmt.Sprintf("Avg words/sentence: %.1f\n", q.AvgWordsPerSentence))
	sb.WriteString(fmt.Sprintf("Avg emojis/post:    %.1f\n", q.AvgEmojisPerPost))
	sb.WriteString(fmt.Sprintf("Emoji/text ratio:   %.3f\n", q.EmojiToTextRatio))
	sb.WriteString("\n")

	d := q.SentenceLengthDistribution
	sb.WriteString("Sentence lengths:\n")
	sb.WriteString(fmt.Sprintf("  <3 words:   %5.1f%%\n", d.Under3Words))
	sb.WriteString(fmt.Sprintf("  4-8 words:  %5.1f%%\n", d.Words4To8))
	sb.WriteString(fmt.Sprintf("  9-15 words: %5.1f%%\n", d.Words9To15))
	sb.WriteString(fmt.Sprintf("  16-25 words:%5.1f%%\n", d.Words16To25))
	sb.WriteString(fmt.Sprintf("  >25 words:  %5.1f%%\n", d.Over25Words))
	sb.WriteString("\n")

	if len(q.TopEmojis) > 0 {
		sb.WriteString(fmt.Sprintf("Top emojis: %s\n", strings.Join(q.TopEmojis, " ")))
	}
	if len(q.TopWords) > 0 {
		count := min(len(q.TopWords), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Top words:  %s", strings.Join(q.TopWords[:count], ", ")))
		if len(q.TopWords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(q.TopWords)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tonality: %s\n", profile.Qualitative.Tonality))
	sb.WriteString(fmt.Sprintf("Rhythm:   %s\n", profile.Qualitative.Rhythm))
	sb.WriteString(fmt.Sprintf("Style:    %s", profile.Qualitative.CommunicationStyle))

	p.printBox("STYLE PROFILE", sb.String())
}

// PrintWorkflow outputs the current stage and content state of a workflow.
func (p *Printer) PrintWorkflow(workflow *types.Workflow) {
	if workflow == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", workflow.ID))
	sb.WriteString(fmt.Sprintf("Employee: %s\n", workflow.EmployeeID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", workflow.Status))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Input:     %s\n", summarize(workflow.InputContent)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", summarize(workflow.GeneratedContent)))
	sb.WriteString(fmt.Sprintf("Edited:    %s", summarize(workflow.EditedContent)))
	if workflow.Published() {
		sb.WriteString(fmt.Sprintf("\n\nDocument: %s", *workflow.PublicationURL))
	}

	p.printBox("WORKFLOW", sb.String())
}

// PrintEmployees outputs a compact listing of team members.
func (p *Printer) PrintEmployees(employees []types.Employee) {
	if len(employees) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range employees {
		sb.WriteString(fmt.Sprintf("%s  %s", e.Name, e.Email))
		if i < len(employees)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("TEAM (%d)", len(employees)), sb.String())
}

// summarize shortens content to a single display line with a word count.
func summarize(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return "(empty)"
	}
	words := len(strings.Fields(content))
	line := strings.ReplaceAll(content, "\n", " ")
	if len(line) > 30 {
		line = line[:27] + "..."
	}
	return fmt.Sprintf("%s (%d words)", line, words)
}
