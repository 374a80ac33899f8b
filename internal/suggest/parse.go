package suggest

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Group titles, shown to the user.
const (
	TitleProjects = "Recommended Projects"
	TitleResume   = "Resume Improvements"
	TitleLearning = "Learning Path"
)

// bulletMarkers are stripped from the start of every reply line.
const bulletMarkers = "•-* "

var categoryPrefixes = []struct {
	prefix string
	kind   types.SuggestionType
}{
	{"project:", types.SuggestionProjects},
	{"resume:", types.SuggestionResume},
	{"learning:", types.SuggestionLearning},
}

// emptyGroups returns the three suggestion groups in response order.
func emptyGroups() []types.SuggestionGroup {
	return []types.SuggestionGroup{
		{Type: types.SuggestionProjects, Title: TitleProjects, Items: []string{}},
		{Type: types.SuggestionResume, Title: TitleResume, Items: []string{}},
		{Type: types.SuggestionLearning, Title: TitleLearning, Items: []string{}},
	}
}

// ParseReply sorts a completion into the three suggestion groups. A line starting with a
// category prefix (any case) switches the active group; it and following lines are
// appended to that group until the next prefix. Lines before the first prefix are dropped.
func ParseReply(text string) []types.SuggestionGroup {
	groups := emptyGroups()
	index := map[types.SuggestionType]int{}
	for i, g := range groups {
		index[g.Type] = i
	}

	current := -1
	for _, line := range strings.Split(llm.CleanReply(text), "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), bulletMarkers)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		for _, c := range categoryPrefixes {
			if strings.HasPrefix(lower, c.prefix) {
				current = index[c.kind]
				line = strings.TrimSpace(line[len(c.prefix):])
				break
			}
		}

		if current >= 0 && line != "" {
			groups[current].Items = append(groups[current].Items, line)
		}
	}
	return groups
}

// ParseBullets turns a bullet-list completion into suggestion lines. Numbered section
// headings ("1.", "2.", "3.") are dropped.
func ParseBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(llm.CleanReply(text), "\n") {
		if strings.TrimSpace(line) == "" || isNumberedHeading(line) {
			continue
		}
		line = strings.TrimLeft(strings.TrimSpace(line), bulletMarkers)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isNumberedHeading(line string) bool {
	for _, p := range []string{"1.", "2.", "3."} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Fallback returns the fixed suggestions used when the completion service is unavailable.
func Fallback(missing []string) []types.SuggestionGroup {
	groups := emptyGroups()
	groups[0].Items = []string{"Build projects focusing on: " + join(missing)}
	groups[1].Items = []string{"Highlight your experience with the required skills"}
	groups[2].Items = []string{"Focus on learning: " + join(missing)}
	return groups
}

// BulletFallback is the single-list counterpart of Fallback.
func BulletFallback(missing []string) []string {
	return []string{"Consider working on projects to gain experience with: " + join(missing)}
}
