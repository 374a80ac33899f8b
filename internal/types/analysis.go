package types

// SuggestionType tags a suggestion group.
type SuggestionType string

// Suggestion group types, in the order they are returned.
const (
	SuggestionProjects SuggestionType = "projects"
	SuggestionResume   SuggestionType = "resume"
	SuggestionLearning SuggestionType = "learning"
)

// SuggestionGroup is one category of improvement suggestions.
type SuggestionGroup struct {
	Type  SuggestionType `json:"type"`
	Title string         `json:"title"`
	Items []string       `json:"items"`
}

// ResumeAnalysis is the result of analyzing a resume against a job description.
// Scores are percentages in [0, 100].
type ResumeAnalysis struct {
	MatchPercentage     float64           `json:"match_percentage"`
	SkillScore          float64           `json:"skill_score"`
	ExperienceRelevance float64           `json:"experience_relevance"`
	OverallScore        float64           `json:"overall_score"`
	MissingSkills       []string          `json:"missing_skills"`
	MatchingSkills      []string          `json:"matching_skills"`
	ScoreExplanation    string            `json:"score_explanation"`
	Suggestions         []SuggestionGroup `json:"suggestions"`
}

// ClampPercentage bounds v to [0, 100].
func ClampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
