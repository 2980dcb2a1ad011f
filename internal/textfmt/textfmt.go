// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package textfmt renders assistant and policy answers that use a small
markdown-like dialect.

Grammar (line oriented):

  - "### title" on its own line is a heading.
  - A blank line (after trimming) is a break.
  - Any other line is a paragraph; "**x**" spans inside it are bold (non greedy).
*/
package textfmt

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// # Document model

// Kind identifies a block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBreak
)

// Span is a run of paragraph text.
type Span struct {
	Text string
	Bold bool
}

// Block is one parsed line.
type Block struct {
	Kind  Kind
	Text  string // heading title
	Spans []Span // paragraph content
}

var (
	headingPattern = regexp.MustCompile(`^###\s+(.+)$`)
	boldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Parse splits text into blocks, one per input line.
func Parse(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		if match := headingPattern.FindStringSubmatch(line); match != nil {
			blocks = append(blocks, Block{Kind: KindHeading, Text: match[1]})
			continue
		}
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: KindBreak})
			continue
		}
		blocks = append(blocks, Block{Kind: KindParagraph, Spans: spans(line)})
	}
	return blocks
}

func spans(line string) []Span {
	var out []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] > last {
			out = append(out, Span{Text: line[last:loc[0]]})
		}
		out = append(out, Span{Text: line[loc[2]:loc[3]], Bold: true})
		last = loc[1]
	}
	if last < len(line) {
		out = append(out, Span{Text: line[last:]})
	}
	return out
}

// # Rendering

// HeadingStyle selects how headings are drawn.
type HeadingStyle int

const (
	// HeadingUnderline draws a bold title over a rule of the same width.
	HeadingUnderline HeadingStyle = iota
	// HeadingPlain draws a bold title only.
	HeadingPlain
)

// Style configures [Render].
type Style struct {
	Heading HeadingStyle
	Accent  lipgloss.Color
}

// DefaultStyle is the underline variant with the dashboard accent colour.
func DefaultStyle() Style {
	return Style{Heading: HeadingUnderline, Accent: lipgloss.Color("#1976d2")}
}

// Render draws blocks as terminal text. Lines are joined with "\n" and a
// break renders as an empty line.
func Render(blocks []Block, style Style) string {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(style.Accent)
	ruleStyle := lipgloss.NewStyle().Foreground(style.Accent)
	boldStyle := lipgloss.NewStyle().Bold(true)

	var lines []string
	for _, block := range blocks {
		switch block.Kind {
		case KindHeading:
			lines = append(lines, headingStyle.Render(block.Text))
			if style.Heading == HeadingUnderline {
				lines = append(lines, ruleStyle.Render(strings.Repeat("─", lipgloss.Width(block.Text))))
			}
		case KindBreak:
			lines = append(lines, "")
		case KindParagraph:
			var builder strings.Builder
			for _, span := range block.Spans {
				if span.Bold {
					builder.WriteString(boldStyle.Render(span.Text))
					continue
				}
				builder.WriteString(span.Text)
			}
			lines = append(lines, builder.String())
		}
	}
	return strings.Join(lines, "\n")
}

// Format parses and renders text in one step.
func Format(text string, style Style) string {
	return Render(Parse(text), style)
}
