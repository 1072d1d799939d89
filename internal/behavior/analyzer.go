package behavior

import (
	"inputlens/internal/event"
)

// Analyzer computes behavior profiles from event sequences. It is a
// pure function over its input: no clock reads, no shared state, so
// independent analyses can run concurrently without coordination.
type Analyzer struct {
	t Thresholds
}

// NewAnalyzer builds an analyzer, failing fast on inconsistent
// thresholds.
func NewAnalyzer(t Thresholds) (*Analyzer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Thresholds returns the active threshold configuration.
func (a *Analyzer) Thresholds() Thresholds {
	return a.t
}

// Analyze derives a Profile from an event sequence. The empty sequence
// yields the degenerate zero profile with ModeTyped; it is not an error.
func (a *Analyzer) Analyze(seq event.Sequence) Profile {
	if seq.Len() == 0 {
		return Profile{Mode: ModeTyped}
	}

	var (
		burstCount     int
		pauseCount     int
		pasteRunes     int
		pasteEvents    int
		deleteCount    int
		deleteBursts   int
		inDeleteBurst  bool
		totalInserted  = seq.TotalInsertedRunes()
	)

	for i := 0; i < seq.Len(); i++ {
		ev := seq.At(i)
		inserted := ev.InsertedRunes()

		// Paste candidates are size-based, independent of timing: a
		// large single-shot insertion is clipboard-scale however fast
		// the surrounding events were.
		if inserted > a.t.PasteDeltaMin {
			pasteEvents++
			pasteRunes += inserted
		}

		if i > 0 {
			gap := ev.TimestampMs - seq.At(i-1).TimestampMs
			if gap < a.t.BurstGapMs && inserted > 0 && inserted <= a.t.SmallDeltaMax {
				burstCount++
			}
			if gap > a.t.PauseGapMs {
				pauseCount++
			}
		}

		if ev.DeletedLength > 0 {
			deleteCount += ev.DeletedLength
			if !inDeleteBurst {
				deleteBursts++
				inDeleteBurst = true
			}
		} else {
			inDeleteBurst = false
		}
	}

	likelihood := pasteLikelihood(pasteRunes, totalInserted)

	return Profile{
		AvgCharsPerSecond: a.avgCharsPerSecond(seq, totalInserted),
		BurstCount:        burstCount,
		PauseCount:        pauseCount,
		PasteLikelihood:   likelihood,
		Mode:              a.classify(likelihood, pasteEvents),
		DeleteCount:       deleteCount,
		DeleteBurstCount:  deleteBursts,
	}
}

// pasteLikelihood weights paste candidates by their inserted length so
// one large insertion dominates the score even amid many small typed
// edits.
func pasteLikelihood(pasteRunes, totalInserted int) float64 {
	if totalInserted == 0 {
		return 0
	}
	l := float64(pasteRunes) / float64(totalInserted)
	if l < 0 {
		return 0
	}
	if l > 1 {
		return 1
	}
	return l
}

// avgCharsPerSecond divides total inserted characters by elapsed wall
// time, with a fixed duration floor for single-event sequences.
func (a *Analyzer) avgCharsPerSecond(seq event.Sequence, totalInserted int) float64 {
	elapsed := seq.ElapsedMs()
	if elapsed <= 0 {
		elapsed = a.t.MinDurationMs
	}
	return float64(totalInserted) / (float64(elapsed) / 1000.0)
}

func (a *Analyzer) classify(likelihood float64, pasteEvents int) Mode {
	switch {
	case likelihood >= a.t.PasteLikelihoodMin:
		return ModePasted
	case likelihood <= a.t.TypedLikelihoodMax && pasteEvents == 0:
		return ModeTyped
	default:
		return ModeMixed
	}
}

// Hint is a caller-supplied mode hint used when no event timeline is
// available.
type Hint string

const (
	HintTyped Hint = "typed"
	HintPaste Hint = "paste"
)

// ProfileFromHint bypasses event analysis entirely: the hint sets the
// mode directly, with paste likelihood pinned to 1 or 0.
func ProfileFromHint(h Hint) Profile {
	if h == HintPaste {
		return Profile{Mode: ModePasted, PasteLikelihood: 1.0}
	}
	return Profile{Mode: ModeTyped, PasteLikelihood: 0.0}
}
