// Package skills detects skills in resume text using a static skill relationship table.
package skills

import (
	"regexp"
	"strings"
)

// Entry is a canonical skill and its related terms.
type Entry struct {
	Skill   string
	Related []string
}

// Table is a read-only skill relationship table. Build it once with DefaultTable or NewTable
// and share it; nothing mutates it after construction.
type Table struct {
	entries  []Entry
	index    map[string]int
	variants []Variant
	patterns []*regexp.Regexp
}

// Variant maps a textual spelling (e.g. "react.js") to a canonical skill name.
type Variant struct {
	Text      string
	Canonical string
}

// NewTable builds a table from entries and variants. Skill keys are lowercased;
// a repeated key keeps its first definition.
func NewTable(entries []Entry, variants []Variant) *Table {
	t := &Table{
		entries:  make([]Entry, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
		variants: append([]Variant(nil), variants...),
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Skill))
		if key == "" {
			continue
		}
		if _, exists := t.index[key]; exists {
			continue
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Skill: key, Related: append([]string(nil), e.Related...)})
	}
	return t
}

// WithPatterns returns a copy of the table that also detects every match of patterns
// as a skill term of its own.
func (t *Table) WithPatterns(patterns ...*regexp.Regexp) *Table {
	out := *t
	out.patterns = append(append([]*regexp.Regexp(nil), t.patterns...), patterns...)
	return &out
}

// DefaultTable returns the built-in skill relationship table and technology patterns.
func DefaultTable() *Table {
	return NewTable(defaultEntries, defaultVariants).WithPatterns(defaultPatterns...)
}

// Entries returns a copy of the table entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Skill: e.Skill, Related: append([]string(nil), e.Related...)}
	}
	return out
}

// Related returns the skill closure: the lowercased skill followed by its related terms.
// Unknown skills close over themselves only.
func (t *Table) Related(skill string) []string {
	key := strings.ToLower(skill)
	closure := []string{key}
	if i, ok := t.index[key]; ok {
		closure = append(closure, t.entries[i].Related...)
	}
	return closure
}

var defaultEntries = []Entry{
	// Technical
	{"react", []string{"javascript", "html", "css", "web development", "frontend"}},
	{"python", []string{"programming", "coding", "software development", "scripting"}},
	{"java", []string{"programming", "coding", "software development", "object-oriented"}},

	// Business and management
	{"project management", []string{"leadership", "agile", "scrum", "team management", "planning"}},
	{"business analysis", []string{"requirements gathering", "stakeholder management", "documentation"}},
	{"marketing", []string{"digital marketing", "social media", "content creation", "analytics"}},

	// Creative
	{"graphic design", []string{"adobe creative suite", "illustration", "visual design", "typography"}},
	{"content writing", []string{"copywriting", "editing", "blogging", "seo"}},
	{"ui/ux design", []string{"user research", "wireframing", "prototyping", "usability"}},

	// Soft skills
	{"leadership", []string{"team management", "decision making", "mentoring", "strategy"}},
	{"communication", []string{"presentation", "writing", "interpersonal", "public speaking"}},
	{"problem solving", []string{"analytical thinking", "critical thinking", "troubleshooting"}},

	// Healthcare
	{"patient care", []string{"medical terminology", "healthcare", "clinical experience"}},
	{"nursing", []string{"patient assessment", "medical procedures", "healthcare"}},

	// Finance
	{"financial analysis", []string{"excel", "modeling", "forecasting", "budgeting"}},
	{"accounting", []string{"bookkeeping", "financial reporting", "tax preparation"}},

	// Sales
	{"sales", []string{"negotiation", "client relationship", "business development"}},
	{"customer service", []string{"client support", "problem resolution", "communication"}},
}

var defaultVariants = []Variant{
	{"reactjs", "react"},
	{"react.js", "react"},
	{"nodejs", "node"},
	{"node.js", "node"},
	{"next.js", "nextjs"},
	{"expressjs", "express"},
	{"express.js", "express"},
}

// defaultPatterns match common technology terms that have no table entry.
// They run against the lowercased raw text so "ci/cd" keeps its slash.
var defaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:flask|django|fastapi|spring|rails|laravel|angular|vue|svelte)\b`),
	regexp.MustCompile(`\b(?:jest|cypress|selenium|mocha|chai|pytest|junit)\b`),
	regexp.MustCompile(`\b(?:docker|kubernetes|terraform|aws|azure|gcp)\b`),
	regexp.MustCompile(`\b(?:sql|nosql|mongodb|postgres|postgresql|mysql|redis)\b`),
	regexp.MustCompile(`\b(?:golang|rust|typescript|javascript|kotlin|swift)\b`),
	regexp.MustCompile(`\b(?:ci/cd|git|github|gitlab)\b`),
	regexp.MustCompile(`\b(?:html5|css3|sass|tailwind)\b`),
	regexp.MustCompile(`\b(?:agile|scrum|kanban)\b`),
}
