// Package rules maps behavior and structure profiles to answer-mode
// tags through an ordered, inspectable rule table.
package rules

import (
	"sort"

	"inputlens/internal/behavior"
	"inputlens/internal/structure"
)

// Tag is an answer-mode identifier emitted by the engine.
type Tag string

const (
	TagSummarize Tag = "summarize"
	TagRefine    Tag = "refine"
	TagExplain   Tag = "explain"
	TagTranslate Tag = "translate"
	TagStructure Tag = "structure"
	TagClarify   Tag = "clarify"
	TagExplore   Tag = "explore"
)

// Context carries collaborator signals that neither analyzer can derive
// from the input itself.
type Context struct {
	// LanguageMismatch is set by the host when the detected script does
	// not match the expected response language.
	LanguageMismatch bool
}

// Predicate decides whether a rule fires for a given profile pair.
type Predicate func(b behavior.Profile, s structure.Profile, ctx Context) bool

// Rule pairs a predicate with the tag it emits. Higher priority rules
// are evaluated first; ties keep declaration order.
type Rule struct {
	Name     string
	Priority int
	Tag      Tag
	When     Predicate
}

// Engine evaluates an ordered rule list. Evaluation is total: any valid
// profile pair yields a (possibly empty) tag sequence.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine from the given rules, ordered by priority
// descending with declaration order breaking ties.
func NewEngine(ruleSet []Rule) *Engine {
	ordered := make([]Rule, len(ruleSet))
	copy(ordered, ruleSet)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return &Engine{rules: ordered}
}

// Rules returns the evaluation-ordered rule list.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate scans the rule table and collects each matching rule's tag.
// Several independent tags may fire, but each tag appears at most once,
// at the position of its first match. No match yields an empty (nil)
// sequence; the engine never invents a fallback.
func (e *Engine) Evaluate(b behavior.Profile, s structure.Profile, ctx Context) []Tag {
	var tags []Tag
	seen := make(map[Tag]bool)
	for _, r := range e.rules {
		if r.When == nil || !r.When(b, s, ctx) {
			continue
		}
		if seen[r.Tag] {
			continue
		}
		seen[r.Tag] = true
		tags = append(tags, r.Tag)
	}
	return tags
}
