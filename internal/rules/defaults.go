package rules

import (
	"errors"
	"fmt"

	"inputlens/internal/behavior"
	"inputlens/internal/structure"
)

// ErrInvalidRulesConfig is returned when rule thresholds are out of
// range.
var ErrInvalidRulesConfig = errors.New("invalid rules configuration")

// Config holds the tunable thresholds for the default rule table.
type Config struct {
	// JapaneseDominant is the japanese-ratio threshold above which text
	// counts as Japanese-dominant.
	JapaneseDominant float64 `toml:"japanese_dominant" json:"japanese_dominant" yaml:"japanese_dominant"`

	// RefineDeleteBursts is the delete-burst count that marks a typed
	// session as revision-heavy.
	RefineDeleteBursts int `toml:"refine_delete_bursts" json:"refine_delete_bursts" yaml:"refine_delete_bursts"`
}

// DefaultConfig returns the default rule thresholds.
func DefaultConfig() Config {
	return Config{
		JapaneseDominant:   0.5,
		RefineDeleteBursts: 3,
	}
}

// Validate checks threshold ranges.
func (c Config) Validate() error {
	switch {
	case c.JapaneseDominant <= 0 || c.JapaneseDominant > 1:
		return fmt.Errorf("%w: japanese_dominant must be in (0,1], got %g", ErrInvalidRulesConfig, c.JapaneseDominant)
	case c.RefineDeleteBursts <= 0:
		return fmt.Errorf("%w: refine_delete_bursts must be positive, got %d", ErrInvalidRulesConfig, c.RefineDeleteBursts)
	}
	return nil
}

// DefaultRules builds the standard rule table. Priorities are spaced so
// hosts can interleave custom rules without renumbering.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		{
			Name:     "pasted-long-summarize",
			Priority: 100,
			Tag:      TagSummarize,
			When: func(b behavior.Profile, s structure.Profile, _ Context) bool {
				return b.Mode == behavior.ModePasted && s.LengthClass == structure.ClassLong
			},
		},
		{
			Name:     "code-block-explain",
			Priority: 90,
			Tag:      TagExplain,
			When: func(_ behavior.Profile, s structure.Profile, _ Context) bool {
				return s.HasCodeBlock
			},
		},
		{
			Name:     "japanese-mismatch-translate",
			Priority: 80,
			Tag:      TagTranslate,
			When: func(_ behavior.Profile, s structure.Profile, ctx Context) bool {
				return ctx.LanguageMismatch && s.JapaneseRatio >= cfg.JapaneseDominant
			},
		},
		{
			Name:     "hesitant-typing-refine",
			Priority: 70,
			Tag:      TagRefine,
			When: func(b behavior.Profile, _ structure.Profile, _ Context) bool {
				if b.Mode != behavior.ModeTyped {
					return false
				}
				hesitant := b.PauseCount > 0 && b.PauseCount >= b.BurstCount
				revisionHeavy := b.DeleteBurstCount >= cfg.RefineDeleteBursts
				return hesitant || revisionHeavy
			},
		},
		{
			Name:     "bullet-list-structure",
			Priority: 60,
			Tag:      TagStructure,
			When: func(_ behavior.Profile, s structure.Profile, _ Context) bool {
				return s.HasBulletList
			},
		},
		{
			Name:     "question-clarify",
			Priority: 50,
			Tag:      TagClarify,
			When: func(_ behavior.Profile, s structure.Profile, _ Context) bool {
				return s.QuestionLike
			},
		},
		{
			Name:     "short-explore",
			Priority: 40,
			Tag:      TagExplore,
			When: func(_ behavior.Profile, s structure.Profile, _ Context) bool {
				return s.LengthClass == structure.ClassShort && s.CharCount > 0
			},
		},
	}
}
