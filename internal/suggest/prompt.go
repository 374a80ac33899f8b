package suggest

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const promptFile = "suggestions.json"

// Request carries everything the suggestion prompt is built from.
type Request struct {
	JobDescription *types.JobDescription
	MissingSkills  []string
	CurrentScore   float64
}

// BuildPrompt renders the categorized suggestion prompt. The model is asked to prefix
// every suggestion with Project:, Resume: or Learning:.
func BuildPrompt(req Request) (string, error) {
	if req.JobDescription == nil {
		return "", fmt.Errorf("job description is required")
	}
	jd := req.JobDescription
	potential := PotentialSkills(jd)

	highlight := append(jd.RequiredSkills(), potential...)

	return prompts.Render(promptFile, "formatted", map[string]string{
		"JobDescription":  jd.Text(),
		"RequiredSkills":  join(jd.RequiredSkills()),
		"PreferredSkills": join(jd.PreferredSkills()),
		"ContextSkills":   join(potential),
		"MissingSkills":   join(req.MissingSkills),
		"HighlightSkills": join(highlight),
		"CurrentScore":    formatScore(req.CurrentScore),
	})
}

// BuildBulletPrompt renders the single-list suggestion prompt.
func BuildBulletPrompt(req Request) (string, error) {
	if req.JobDescription == nil {
		return "", fmt.Errorf("job description is required")
	}
	return prompts.Render(promptFile, "bullets", map[string]string{
		"JobDescription": req.JobDescription.Text(),
		"MissingSkills":  join(req.MissingSkills),
		"CurrentScore":   formatScore(req.CurrentScore),
	})
}

func join(items []string) string {
	return strings.Join(items, ", ")
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
