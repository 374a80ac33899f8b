// Package suggest builds improvement suggestions for a resume from a completion model.
package suggest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Generator asks a completion model for suggestions. It never fails: any problem with
// the model call yields the fixed fallback suggestions.
type Generator struct {
	client       llm.Client
	params       llm.Params
	bulletParams llm.Params
}

// NewGenerator creates a Generator. A nil client always produces fallback suggestions.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client:       client,
		params:       llm.SuggestionParams(),
		bulletParams: llm.BulletParams(),
	}
}

// Generate returns the projects, resume and learning suggestion groups, in that order.
func (g *Generator) Generate(ctx context.Context, req Request) []types.SuggestionGroup {
	reply, err := g.complete(ctx, req, BuildPrompt, g.params)
	if err != nil {
		log.Printf("[suggest] Error getting suggestions: %v", err)
		return Fallback(req.MissingSkills)
	}
	return ParseReply(reply)
}

// Bullets returns a flat list of suggestions.
func (g *Generator) Bullets(ctx context.Context, req Request) []string {
	reply, err := g.complete(ctx, req, BuildBulletPrompt, g.bulletParams)
	if err != nil {
		log.Printf("[suggest] Error getting bullet suggestions: %v", err)
		return BulletFallback(req.MissingSkills)
	}
	items := ParseBullets(reply)
	if len(items) == 0 {
		return BulletFallback(req.MissingSkills)
	}
	return items
}

func (g *Generator) complete(ctx context.Context, req Request, build func(Request) (string, error), params llm.Params) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("no completion client configured")
	}
	prompt, err := build(req)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	reply, err := g.client.Complete(ctx, prompt, params)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("empty reply from %s", g.client.Model())
	}
	return reply, nil
}
