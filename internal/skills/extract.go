package skills

import (
	"log"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/normalize"
)

// Rule names the heuristic that detected a skill.
type Rule string

// Detection rules. Exact, parts and related are tried in order for each table entry.
const (
	RuleExact     Rule = "exact"
	RuleParts     Rule = "parts"
	RuleRelated   Rule = "related"
	RuleVariation Rule = "variation"
	RulePattern   Rule = "pattern"
)

// Detection records why a skill was detected.
type Detection struct {
	Skill string
	Rule  Rule
}

// Extract returns every skill term detected in text: canonical keys together with their
// related terms. An empty set is a valid result.
func (t *Table) Extract(text string) Set {
	detected, _ := t.ExtractDetailed(text)
	return detected
}

// ExtractDetailed is Extract plus the list of canonical detections in table order.
//
// For each entry the skill is detected when the key occurs in the text, when every word
// of a multi-word key occurs somewhere in the text, or when any related term occurs.
// A detection adds the key and all its related terms. Variant spellings add their
// canonical name only, and technology patterns add the matched term itself.
func (t *Table) ExtractDetailed(text string) (Set, []Detection) {
	matchText := normalize.ForMatching(text)
	rawLower := strings.ToLower(text)

	detected := NewSet()
	var detections []Detection

	for _, e := range t.entries {
		rule, ok := matchEntry(e, matchText, rawLower)
		if !ok {
			continue
		}
		detected.Add(e.Skill)
		detected.AddAll(e.Related)
		detections = append(detections, Detection{Skill: e.Skill, Rule: rule})
	}

	for _, v := range t.variants {
		if strings.Contains(matchText, v.Text) || strings.Contains(rawLower, v.Text) {
			detected.Add(v.Canonical)
			detections = append(detections, Detection{Skill: v.Canonical, Rule: RuleVariation})
		}
	}

	for _, re := range t.patterns {
		for _, m := range re.FindAllString(rawLower, -1) {
			if detected.Has(m) {
				continue
			}
			detected.Add(m)
			detections = append(detections, Detection{Skill: m, Rule: RulePattern})
		}
	}

	if len(detections) > 0 {
		log.Printf("[skills] detected %d skill terms from %d rules", len(detected), len(detections))
	}

	return detected, detections
}

// matchEntry checks both the punctuation-free text and the raw lowercased text so that
// keys such as "ui/ux design" stay detectable.
func matchEntry(e Entry, text, raw string) (Rule, bool) {
	contains := func(term string) bool {
		return strings.Contains(text, term) || strings.Contains(raw, term)
	}

	if contains(e.Skill) {
		return RuleExact, true
	}

	parts := strings.Fields(e.Skill)
	if len(parts) > 1 && all(parts, contains) {
		return RuleParts, true
	}

	for _, rel := range e.Related {
		if contains(strings.ToLower(rel)) {
			return RuleRelated, true
		}
	}

	return "", false
}

func all(terms []string, pred func(string) bool) bool {
	for _, term := range terms {
		if !pred(term) {
			return false
		}
	}
	return true
}
