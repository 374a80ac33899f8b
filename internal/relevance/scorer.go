package relevance

import (
	"context"
	"log"
	"strings"
)

const (
	// DefaultChunkSize keeps each chunk within the classification model's input limit.
	DefaultChunkSize = 512
	// DefaultTemplate is the hypothesis template used for every comparison.
	DefaultTemplate = "This experience is relevant to: {}"
	// DefaultScore is returned when no comparison could be made or the classifier failed.
	DefaultScore = 50.0
)

// Scorer computes experience relevance as the best zero-shot score over all
// resume/job chunk pairs.
type Scorer struct {
	classifier Classifier
	chunkSize  int
	template   string
}

// NewScorer creates a Scorer with the default chunk size and template.
func NewScorer(classifier Classifier) *Scorer {
	return &Scorer{
		classifier: classifier,
		chunkSize:  DefaultChunkSize,
		template:   DefaultTemplate,
	}
}

// WithChunkSize returns a copy of the scorer using size-rune chunks.
func (s *Scorer) WithChunkSize(size int) *Scorer {
	out := *s
	if size > 0 {
		out.chunkSize = size
	}
	return &out
}

// Score returns a relevance percentage in [0, 100]. Every chunk pair is classified
// sequentially; the maximum top score wins. It never fails: with no valid pair or on any
// classifier error it returns DefaultScore.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) float64 {
	resumeChunks := Chunk(resumeText, s.chunkSize)
	jobChunks := Chunk(jobText, s.chunkSize)

	best := -1.0
	for _, rc := range resumeChunks {
		if strings.TrimSpace(rc) == "" {
			continue
		}
		for _, jc := range jobChunks {
			if strings.TrimSpace(jc) == "" {
				continue
			}
			result, err := s.classifier.Classify(ctx, rc, []string{jc}, s.template)
			if err != nil {
				log.Printf("[relevance] Error calculating relevance: %v", err)
				return DefaultScore
			}
			top, ok := result.Top()
			if !ok {
				log.Printf("[relevance] Error calculating relevance: empty classification")
				return DefaultScore
			}
			best = max(best, top)
		}
	}

	if best < 0 {
		return DefaultScore
	}
	return min(max(best*100, 0), 100)
}

// Chunk splits text into consecutive pieces of at most size runes.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := min(i+size, len(runes))
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
