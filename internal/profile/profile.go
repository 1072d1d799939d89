// Package profile assembles the full analysis pipeline: behavior and
// structure analyzers feeding the rule engine, with an aggregate result
// type suitable for JSON output and storage.
package profile

import (
	"time"

	"github.com/google/uuid"

	"inputlens/internal/behavior"
	"inputlens/internal/config"
	"inputlens/internal/event"
	"inputlens/internal/rules"
	"inputlens/internal/structure"
)

// InputProfile is the complete analysis output for one input session.
type InputProfile struct {
	ID         string            `json:"id"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
	Behavior   behavior.Profile  `json:"behavior"`
	Structure  structure.Profile `json:"structure"`
	Tags       []rules.Tag       `json:"tags"`
}

// Analyzer wires the two analyzers and the rule engine together. The
// two analyzers are independent; each analysis call owns its inputs
// exclusively, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	behavior  *behavior.Analyzer
	structure *structure.Analyzer
	engine    *rules.Engine
}

// New builds the pipeline from configuration, failing fast on any
// invalid thresholds.
func New(cfg *config.Config) (*Analyzer, error) {
	ba, err := behavior.NewAnalyzer(cfg.Behavior)
	if err != nil {
		return nil, err
	}
	sa, err := structure.NewAnalyzer(cfg.Structure)
	if err != nil {
		return nil, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		behavior:  ba,
		structure: sa,
		engine:    rules.NewEngine(rules.DefaultRules(cfg.Rules)),
	}, nil
}

// AnalyzeTimeline runs the full pipeline over a recorded event sequence
// and the final assembled text.
func (a *Analyzer) AnalyzeTimeline(seq event.Sequence, text string, ctx rules.Context) *InputProfile {
	b := a.behavior.Analyze(seq)
	s := a.structure.Analyze(text)
	return a.assemble(b, s, ctx)
}

// AnalyzeWithHint runs the pipeline without an event timeline: the
// behavior analyzer is bypassed and the mode comes straight from the
// caller's hint.
func (a *Analyzer) AnalyzeWithHint(hint behavior.Hint, text string, ctx rules.Context) *InputProfile {
	b := behavior.ProfileFromHint(hint)
	s := a.structure.Analyze(text)
	return a.assemble(b, s, ctx)
}

func (a *Analyzer) assemble(b behavior.Profile, s structure.Profile, ctx rules.Context) *InputProfile {
	return &InputProfile{
		ID:         uuid.NewString(),
		AnalyzedAt: time.Now().UTC(),
		Behavior:   b,
		Structure:  s,
		Tags:       a.engine.Evaluate(b, s, ctx),
	}
}
