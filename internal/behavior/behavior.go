// Package behavior turns a timestamped edit-event sequence into a
// profile of how the text arrived: typing speed, burst/pause pattern,
// and paste likelihood.
package behavior

import (
	"errors"
	"fmt"
)

// ErrInvalidThresholds is returned by NewAnalyzer when the threshold
// configuration is internally inconsistent.
var ErrInvalidThresholds = errors.New("invalid behavior thresholds")

// Mode classifies the overall input source for a sequence.
type Mode string

const (
	ModeTyped  Mode = "typed"
	ModePasted Mode = "pasted"
	ModeMixed  Mode = "mixed"
)

// Thresholds defines the timing and size boundaries used to classify
// events. All classification policy lives here so it can be tuned
// without touching the algorithm.
type Thresholds struct {
	// BurstGapMs: inter-event gaps below this are burst-speed.
	BurstGapMs int64 `toml:"burst_gap_ms" json:"burst_gap_ms" yaml:"burst_gap_ms"`

	// PauseGapMs: inter-event gaps above this count as thinking pauses.
	PauseGapMs int64 `toml:"pause_gap_ms" json:"pause_gap_ms" yaml:"pause_gap_ms"`

	// SmallDeltaMax: largest insertion still plausible as one keystroke
	// (IME composition can commit a few characters at once).
	SmallDeltaMax int `toml:"small_delta_max" json:"small_delta_max" yaml:"small_delta_max"`

	// PasteDeltaMin: insertions longer than this in a single event are
	// paste candidates regardless of timing.
	PasteDeltaMin int `toml:"paste_delta_min" json:"paste_delta_min" yaml:"paste_delta_min"`

	// PasteLikelihoodMin: likelihood at or above this classifies the
	// sequence as pasted.
	PasteLikelihoodMin float64 `toml:"paste_likelihood_min" json:"paste_likelihood_min" yaml:"paste_likelihood_min"`

	// TypedLikelihoodMax: likelihood at or below this, with no paste
	// candidates, classifies the sequence as typed.
	TypedLikelihoodMax float64 `toml:"typed_likelihood_max" json:"typed_likelihood_max" yaml:"typed_likelihood_max"`

	// MinDurationMs is the floor used for speed calculation when the
	// sequence has no measurable elapsed time.
	MinDurationMs int64 `toml:"min_duration_ms" json:"min_duration_ms" yaml:"min_duration_ms"`
}

// DefaultThresholds returns empirically reasonable defaults. 50ms gaps
// correspond to sustained ~150 WPM bursts; 1s idle reads as hesitation.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BurstGapMs:         50,
		PauseGapMs:         1000,
		SmallDeltaMax:      3,
		PasteDeltaMin:      8,
		PasteLikelihoodMin: 0.5,
		TypedLikelihoodMax: 0.2,
		MinDurationMs:      250,
	}
}

// Validate checks internal consistency. Invalid thresholds fail at
// construction time, never during analysis.
func (t Thresholds) Validate() error {
	switch {
	case t.BurstGapMs <= 0:
		return fmt.Errorf("%w: burst_gap_ms must be positive, got %d", ErrInvalidThresholds, t.BurstGapMs)
	case t.PauseGapMs <= t.BurstGapMs:
		return fmt.Errorf("%w: pause_gap_ms (%d) must exceed burst_gap_ms (%d)",
			ErrInvalidThresholds, t.PauseGapMs, t.BurstGapMs)
	case t.SmallDeltaMax <= 0:
		return fmt.Errorf("%w: small_delta_max must be positive, got %d", ErrInvalidThresholds, t.SmallDeltaMax)
	case t.PasteDeltaMin <= t.SmallDeltaMax:
		return fmt.Errorf("%w: paste_delta_min (%d) must exceed small_delta_max (%d)",
			ErrInvalidThresholds, t.PasteDeltaMin, t.SmallDeltaMax)
	case t.PasteLikelihoodMin <= 0 || t.PasteLikelihoodMin > 1:
		return fmt.Errorf("%w: paste_likelihood_min must be in (0,1], got %g", ErrInvalidThresholds, t.PasteLikelihoodMin)
	case t.TypedLikelihoodMax < 0 || t.TypedLikelihoodMax >= t.PasteLikelihoodMin:
		return fmt.Errorf("%w: typed_likelihood_max (%g) must be in [0, paste_likelihood_min)",
			ErrInvalidThresholds, t.TypedLikelihoodMax)
	case t.MinDurationMs <= 0:
		return fmt.Errorf("%w: min_duration_ms must be positive, got %d", ErrInvalidThresholds, t.MinDurationMs)
	}
	return nil
}

// Profile is the derived, immutable result of behavioral analysis.
type Profile struct {
	AvgCharsPerSecond float64 `json:"avg_chars_per_second"`
	BurstCount        int     `json:"burst_count"`
	PauseCount        int     `json:"pause_count"`
	PasteLikelihood   float64 `json:"paste_likelihood"`
	Mode              Mode    `json:"mode"`

	// Editing stats derived from deletion deltas. A run of consecutive
	// deleting events counts as one delete burst.
	DeleteCount      int `json:"delete_count"`
	DeleteBurstCount int `json:"delete_burst_count"`
}
