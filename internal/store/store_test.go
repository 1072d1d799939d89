package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inputlens/internal/behavior"
	"inputlens/internal/profile"
	"inputlens/internal/rules"
	"inputlens/internal/structure"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProfile(id string, at time.Time) *profile.InputProfile {
	return &profile.InputProfile{
		ID:         id,
		AnalyzedAt: at,
		Behavior: behavior.Profile{
			Mode:            behavior.ModePasted,
			PasteLikelihood: 0.92,
			BurstCount:      3,
		},
		Structure: structure.Profile{
			LengthClass:  structure.ClassLong,
			HasCodeBlock: true,
			CharCount:    640,
		},
		Tags: []rules.Tag{rules.TagSummarize, rules.TagExplain},
	}
}

func TestSaveAndRecent(t *testing.T) {
	s := openTemp(t)
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, s.Save(sampleProfile("aaa", base.Add(-2*time.Minute))))
	require.NoError(t, s.Save(sampleProfile("bbb", base.Add(-1*time.Minute))))
	require.NoError(t, s.Save(sampleProfile("ccc", base)))

	got, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ccc", got[0].ID)
	assert.Equal(t, "bbb", got[1].ID)

	// Full profile content survives the round trip.
	assert.Equal(t, behavior.ModePasted, got[0].Behavior.Mode)
	assert.InDelta(t, 0.92, got[0].Behavior.PasteLikelihood, 1e-9)
	assert.Equal(t, []rules.Tag{rules.TagSummarize, rules.TagExplain}, got[0].Tags)
}

func TestSaveRejectsDuplicateID(t *testing.T) {
	s := openTemp(t)
	p := sampleProfile("dup", time.Now())
	require.NoError(t, s.Save(p))
	assert.Error(t, s.Save(p))
}

func TestCountAndPrune(t *testing.T) {
	s := openTemp(t)
	base := time.Now().UTC()

	require.NoError(t, s.Save(sampleProfile("old", base.Add(-48*time.Hour))))
	require.NoError(t, s.Save(sampleProfile("new", base)))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := s.Prune(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := openTemp(t)
	got, err := s.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
