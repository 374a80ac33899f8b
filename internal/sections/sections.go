// Package sections splits resume text into labeled sections using heading keywords.
package sections

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/normalize"
)

// Section names a resume section.
type Section string

// Known resume sections, in keyword table order.
const (
	Skills     Section = "skills"
	Experience Section = "experience"
	Education  Section = "education"
	Projects   Section = "projects"
)

// keywordTable lists heading synonyms per section. Order matters: a line is
// assigned to the first section with a matching keyword.
var keywordTable = []struct {
	section  Section
	keywords []string
}{
	{Skills, []string{"skills", "technical skills", "technologies", "tech stack", "competencies",
		"expertise", "proficiencies", "qualifications"}},
	{Experience, []string{"experience", "work experience", "employment", "work history",
		"professional experience", "career history"}},
	{Education, []string{"education", "academic", "qualifications", "academic background",
		"educational background"}},
	{Projects, []string{"projects", "personal projects", "key projects", "professional projects",
		"portfolio"}},
}

// All returns the known sections in table order.
func All() []Section {
	out := make([]Section, 0, len(keywordTable))
	for _, entry := range keywordTable {
		out = append(out, entry.section)
	}
	return out
}

type boundary struct {
	line    int
	section Section
}

// Segment maps each section to the lines between its heading and the next heading.
// Lines before the first heading are discarded; every section key is present.
func Segment(text string) map[Section][]string {
	lines := normalize.Lines(text)

	result := make(map[Section][]string, len(keywordTable))
	for _, s := range All() {
		result[s] = []string{}
	}

	// Lines are scanned in order, so boundaries come out sorted by index.
	var boundaries []boundary
	for i, line := range lines {
		if s, ok := Classify(line); ok {
			boundaries = append(boundaries, boundary{line: i, section: s})
		}
	}

	for i, b := range boundaries {
		end := len(lines)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].line
		}
		result[b.section] = append(result[b.section], lines[b.line+1:end]...)
	}

	return result
}

// Classify reports the first section whose keywords occur in line.
func Classify(line string) (Section, bool) {
	line = strings.ToLower(line)
	for _, entry := range keywordTable {
		for _, k := range entry.keywords {
			if strings.Contains(line, k) {
				return entry.section, true
			}
		}
	}
	return "", false
}

// Counts returns the number of content lines per section.
func Counts(segments map[Section][]string) map[Section]int {
	counts := make(map[Section]int, len(segments))
	for s, lines := range segments {
		counts[s] = len(lines)
	}
	return counts
}
