// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintResult prints every report box for res.
func (p *Printer) PrintResult(res *analysis.Result) {
	if res == nil || res.Analysis == nil {
		return
	}
	p.PrintSections(res.Sections)
	p.PrintDetections(res.Detections)
	p.PrintScores(res)
	p.PrintSuggestions(res.Analysis.Suggestions)
}

// PrintScores outputs the score breakdown and the matched and missing skills.
func (p *Printer) PrintScores(res *analysis.Result) {
	if res == nil || res.Analysis == nil {
		return
	}
	a := res.Analysis

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %5.1f%%\n", a.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:      %5.1f%%  (%d of %d required)\n", a.SkillScore, res.Matched, res.Required))
	sb.WriteString(fmt.Sprintf("Experience:  %5.1f%%\n", a.ExperienceRelevance))
	sb.WriteString("\n")
	writeList(&sb, "Matching", a.MatchingSkills)
	writeList(&sb, "Missing", a.MissingSkills)

	p.printBox("MATCH SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		sb.WriteString(fmt.Sprintf("%s: none\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintDetections outputs the detected skills grouped by the rule that found them.
func (p *Printer) PrintDetections(detections []skills.Detection) {
	if len(detections) == 0 {
		return
	}

	byRule := make(map[skills.Rule][]string)
	for _, d := range detections {
		byRule[d.Rule] = append(byRule[d.Rule], d.Skill)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills detected: %d\n\n", len(detections)))
	for _, rule := range []skills.Rule{skills.RuleExact, skills.RuleParts, skills.RuleVariation, skills.RuleRelated, skills.RulePattern} {
		found := byRule[rule]
		if len(found) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-10s %s\n", string(rule)+":", strings.Join(found, ", ")))
	}

	p.printBox("DETECTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs how many lines landed in each resume section.
func (p *Printer) PrintSections(counts map[sections.Section]int) {
	if len(counts) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range sections.All() {
		sb.WriteString(fmt.Sprintf("%-12s %d lines\n", string(s)+":", counts[s]))
	}

	p.printBox("RESUME SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs each suggestion group with its items.
func (p *Printer) PrintSuggestions(groups []types.SuggestionGroup) {
	if len(groups) == 0 {
		return
	}

	var sb strings.Builder
	for i, g := range groups {
		sb.WriteString(g.Title + "\n")
		if len(g.Items) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, item := range g.Items {
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBullets outputs resume bullet suggestions.
func (p *Printer) PrintBullets(bullets []string) {
	if len(bullets) == 0 {
		return
	}

	var sb strings.Builder
	for _, b := range bullets {
		sb.WriteString(fmt.Sprintf("• %s\n", b))
	}
	p.printBox("SUGGESTED BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}
