// Package analysis scores a resume against a job description.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Score weights of the overall score.
const (
	SkillWeight     = 0.6
	RelevanceWeight = 0.4
)

// RelevanceScorer rates how relevant resume experience is to a job, as a percentage.
// Implementations fall back to a default score instead of failing.
type RelevanceScorer interface {
	Score(ctx context.Context, resumeText, jobText string) float64
}

// SuggestionGenerator produces suggestion groups. Implementations never fail.
type SuggestionGenerator interface {
	Generate(ctx context.Context, req suggest.Request) []types.SuggestionGroup
}

// Analyzer runs the matching and scoring pipeline. It holds no per-request state and is
// safe to share between requests.
type Analyzer struct {
	skills    *skills.Table
	relevance RelevanceScorer
	suggester SuggestionGenerator
}

// New creates an Analyzer. A nil table uses skills.DefaultTable.
func New(table *skills.Table, relevance RelevanceScorer, suggester SuggestionGenerator) *Analyzer {
	if table == nil {
		table = skills.DefaultTable()
	}
	return &Analyzer{
		skills:    table,
		relevance: relevance,
		suggester: suggester,
	}
}

// Result is an analysis together with the detection details shown in verbose mode.
type Result struct {
	Analysis   *types.ResumeAnalysis
	Detections []skills.Detection
	Sections   map[sections.Section]int
	Matched    int
	Required   int
}

// Analyze scores resumeText against jd.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string, jd *types.JobDescription) (*types.ResumeAnalysis, error) {
	res, err := a.AnalyzeDetailed(ctx, resumeText, jd)
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

// AnalyzeDetailed is Analyze plus detection details. Any panic in the pipeline is
// returned as an *Error.
func (a *Analyzer) AnalyzeDetailed(ctx context.Context, resumeText string, jd *types.JobDescription) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[analysis] Error in analysis: %v", r)
			res = nil
			if cause, ok := r.(error); ok {
				err = &Error{Message: "unexpected panic", Cause: cause}
				return
			}
			err = &Error{Message: fmt.Sprint(r)}
		}
	}()

	if jd == nil {
		return nil, &Error{Message: "job description is required"}
	}
	if a.relevance == nil || a.suggester == nil {
		return nil, &Error{Message: "analyzer is not fully configured"}
	}

	counts := sections.Counts(sections.Segment(resumeText))
	log.Printf("[analysis] sections: skills=%d experience=%d education=%d projects=%d",
		counts[sections.Skills], counts[sections.Experience], counts[sections.Education], counts[sections.Projects])

	detected, detections := a.skills.ExtractDetailed(resumeText)
	match := a.matchRequired(detected, jd.RequiredSkills())

	skillScore := 0.0
	if match.required > 0 {
		skillScore = float64(match.matched) / float64(match.required) * 100
	}
	skillScore = types.ClampPercentage(skillScore)

	relevance := types.ClampPercentage(a.relevance.Score(ctx, resumeText, jd.Text()))
	overall := SkillWeight*skillScore + RelevanceWeight*relevance

	missing := match.missing.Sorted()
	suggestions := a.suggester.Generate(ctx, suggest.Request{
		JobDescription: jd,
		MissingSkills:  missing,
		CurrentScore:   overall,
	})

	analysis := &types.ResumeAnalysis{
		MatchPercentage:     skillScore,
		SkillScore:          skillScore,
		ExperienceRelevance: relevance,
		OverallScore:        overall,
		MissingSkills:       missing,
		MatchingSkills:      match.matching.Sorted(),
		ScoreExplanation:    Explain(match.matching.Len(), match.missing.Len(), match.matched, match.required, skillScore),
		Suggestions:         suggestions,
	}

	return &Result{
		Analysis:   analysis,
		Detections: detections,
		Sections:   counts,
		Matched:    match.matched,
		Required:   match.required,
	}, nil
}

type matchResult struct {
	matching skills.Set
	missing  skills.Set
	matched  int
	required int
}

// matchRequired compares each required skill's closure against the detected terms.
// A closure term matches when it was detected, or when the term with spaces removed
// occurs in the space-joined detected terms.
func (a *Analyzer) matchRequired(detected skills.Set, required []string) matchResult {
	lower := detected.Lower()
	joined := lower.Join(" ")

	res := matchResult{
		matching: skills.NewSet(),
		missing:  skills.NewSet(),
		required: len(required),
	}
	for _, skill := range required {
		closure := a.skills.Related(skill)
		if closureMatches(closure, lower, joined) {
			res.matching.AddAll(closure)
			res.matched++
			log.Printf("[analysis] Matched skill: %s", skill)
		} else {
			res.missing.AddAll(closure)
			log.Printf("[analysis] Missing skill: %s", skill)
		}
	}
	return res
}

func closureMatches(closure []string, detected skills.Set, joined string) bool {
	for _, term := range closure {
		term = strings.ToLower(term)
		if detected.Has(term) {
			return true
		}
		if compact := strings.ReplaceAll(term, " ", ""); compact != "" && strings.Contains(joined, compact) {
			return true
		}
	}
	return false
}

// Explain renders the human-readable score breakdown.
func Explain(found, missing, matched, required int, skillScore float64) string {
	return fmt.Sprintf(`
Score Breakdown:
• Found %d relevant skills
• Missing %d required skills
• Matched %d out of %d required skill categories
• Raw match score: %.1f%%
`, found, missing, matched, required, skillScore)
}
