package suggest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// contextPatterns is the technology vocabulary looked for in job description prose.
var contextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:react\.?js|next\.?js|node\.?js|express\.?js)\b`), // JS ecosystem
	regexp.MustCompile(`\b(?:jest|cypress|selenium|mocha|chai)\b`),            // testing
	regexp.MustCompile(`\b(?:docker|kubernetes|aws|azure|gcp)\b`),             // devops
	regexp.MustCompile(`\b(?:sql|mongodb|postgres|mysql)\b`),                  // databases
	regexp.MustCompile(`\b(?:python|java|golang|rust|cpp)\b`),                 // languages
	regexp.MustCompile(`\b(?:ci/cd|git|github|gitlab)\b`),                     // version control
	regexp.MustCompile(`\b(?:html5|css3|sass|less|tailwind)\b`),               // frontend
	regexp.MustCompile(`\b(?:agile|scrum|kanban)\b`),                          // methodologies
}

// ContextSkills returns the technology terms mentioned anywhere in text, lowercased,
// sorted and unique.
func ContextSkills(text string) []string {
	text = strings.ToLower(text)

	found := make(map[string]struct{})
	for _, re := range contextPatterns {
		for _, m := range re.FindAllString(text, -1) {
			found[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for term := range found {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// PotentialSkills returns the context skills of the job description text that are not
// already declared as required or preferred. Comparison is exact.
func PotentialSkills(jd *types.JobDescription) []string {
	declared := make(map[string]struct{})
	for _, s := range jd.RequiredSkills() {
		declared[s] = struct{}{}
	}
	for _, s := range jd.PreferredSkills() {
		declared[s] = struct{}{}
	}

	var out []string
	for _, s := range ContextSkills(jd.Text()) {
		if _, ok := declared[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
