package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/relevance"
	"github.com/jonathan/resume-analyzer/internal/suggest"
)

// pipeline holds the long-lived collaborators shared by every analysis.
type pipeline struct {
	client    llm.Client
	generator *suggest.Generator
	analyzer  *analysis.Analyzer
}

// newPipeline wires the completion client, relevance scorer and analyzer from cfg.
// When requireLLM is false a client that cannot be created is replaced by the
// fallback suggestions.
func newPipeline(ctx context.Context, cfg *config.Config, requireLLM bool) (*pipeline, error) {
	llmCfg, apiKey, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}

	var client llm.Client
	c, err := llm.NewClient(ctx, llmCfg, apiKey)
	switch {
	case err == nil:
		client = c
		log.Printf("[config] Using %s model %s", llmCfg.Provider, client.Model())
	case requireLLM:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	default:
		log.Printf("[config] Completion client unavailable, using fallback suggestions: %v", err)
	}

	var classifier relevance.Classifier
	if cfg.RelevanceOffline {
		classifier = relevance.Static{Score: relevance.DefaultScore / 100}
	} else {
		classifier = relevance.NewHFClient(cfg.HFOptions())
	}

	generator := suggest.NewGenerator(client)
	return &pipeline{
		client:    client,
		generator: generator,
		analyzer:  analysis.New(nil, relevance.NewScorer(classifier), generator),
	}, nil
}

// Close releases the completion client.
func (p *pipeline) Close() {
	if p.client != nil {
		if err := p.client.Close(); err != nil {
			log.Printf("[config] Error closing completion client: %v", err)
		}
	}
}
