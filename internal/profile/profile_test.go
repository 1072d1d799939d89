package profile

import (
	"strings"
	"testing"

	"inputlens/internal/behavior"
	"inputlens/internal/config"
	"inputlens/internal/event"
	"inputlens/internal/rules"
	"inputlens/internal/structure"
)

func mustPipeline(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// codeSnippet builds a fenced block of 10 code lines, long enough to
// classify as Long.
func codeSnippet() string {
	var sb strings.Builder
	sb.WriteString("```go\n")
	for i := 0; i < 10; i++ {
		sb.WriteString(`fmt.Println("a moderately long line of example output for testing")` + "\n")
	}
	sb.WriteString("```")
	return sb.String()
}

func TestPastedCodeBlockScenario(t *testing.T) {
	a := mustPipeline(t)
	text := codeSnippet()
	seq := event.PastedTimeline(text)

	p := a.AnalyzeTimeline(seq, text, rules.Context{})

	if p.Behavior.Mode != behavior.ModePasted {
		t.Errorf("Mode = %s, want pasted", p.Behavior.Mode)
	}
	if p.Behavior.PasteLikelihood != 1.0 {
		t.Errorf("PasteLikelihood = %g, want 1.0", p.Behavior.PasteLikelihood)
	}
	if p.Structure.LengthClass != structure.ClassLong {
		t.Errorf("LengthClass = %s, want long (%d chars)", p.Structure.LengthClass, p.Structure.CharCount)
	}
	if !p.Structure.HasCodeBlock {
		t.Error("code block not detected")
	}

	// Summarize outranks Explain in the default table.
	wantTags := []rules.Tag{rules.TagSummarize, rules.TagExplain}
	if len(p.Tags) != 2 || p.Tags[0] != wantTags[0] || p.Tags[1] != wantTags[1] {
		t.Errorf("Tags = %v, want %v", p.Tags, wantTags)
	}
}

func TestJapaneseTypedScenario(t *testing.T) {
	a := mustPipeline(t)
	text := "これはテストです。"
	seq := event.TypedTimeline(text, 60)

	p := a.AnalyzeTimeline(seq, text, rules.Context{})

	if p.Behavior.Mode != behavior.ModeTyped {
		t.Errorf("Mode = %s, want typed", p.Behavior.Mode)
	}
	if p.Structure.JapaneseRatio != 1.0 {
		t.Errorf("JapaneseRatio = %g, want 1.0", p.Structure.JapaneseRatio)
	}
	for _, tag := range p.Tags {
		if tag == rules.TagSummarize {
			t.Error("paste-triggered tag fired for typed input")
		}
		if tag == rules.TagTranslate {
			t.Error("translate fired without a language mismatch signal")
		}
	}

	// With the mismatch signal the dominance rule fires.
	p = a.AnalyzeTimeline(seq, text, rules.Context{LanguageMismatch: true})
	found := false
	for _, tag := range p.Tags {
		if tag == rules.TagTranslate {
			found = true
		}
	}
	if !found {
		t.Errorf("Tags = %v, want translate with mismatch context", p.Tags)
	}
}

func TestHintBypass(t *testing.T) {
	a := mustPipeline(t)
	long := strings.Repeat("word ", 120)

	p := a.AnalyzeWithHint(behavior.HintPaste, long, rules.Context{})
	if p.Behavior.Mode != behavior.ModePasted || p.Behavior.PasteLikelihood != 1.0 {
		t.Errorf("paste hint profile = %+v", p.Behavior)
	}
	if len(p.Tags) == 0 || p.Tags[0] != rules.TagSummarize {
		t.Errorf("Tags = %v, want summarize first for pasted long text", p.Tags)
	}

	p = a.AnalyzeWithHint(behavior.HintTyped, long, rules.Context{})
	if p.Behavior.Mode != behavior.ModeTyped || p.Behavior.PasteLikelihood != 0.0 {
		t.Errorf("typed hint profile = %+v", p.Behavior)
	}
}

func TestEmptyInputTotality(t *testing.T) {
	a := mustPipeline(t)
	seq, err := event.NewSequence(nil)
	if err != nil {
		t.Fatal(err)
	}

	p := a.AnalyzeTimeline(seq, "", rules.Context{})
	if p.Behavior.Mode != behavior.ModeTyped {
		t.Errorf("Mode = %s, want typed degenerate", p.Behavior.Mode)
	}
	if p.Structure.LengthClass != structure.ClassShort {
		t.Errorf("LengthClass = %s, want short", p.Structure.LengthClass)
	}
	if len(p.Tags) != 0 {
		t.Errorf("Tags = %v, want none for empty input", p.Tags)
	}
}

func TestAnalysisIsDeterministic(t *testing.T) {
	a := mustPipeline(t)
	text := codeSnippet()
	seq := event.MixedTimeline(text, 80)

	first := a.AnalyzeTimeline(seq, text, rules.Context{})
	for i := 0; i < 5; i++ {
		got := a.AnalyzeTimeline(seq, text, rules.Context{})
		if got.Behavior != first.Behavior || got.Structure != first.Structure {
			t.Fatalf("analysis differs across calls: %+v vs %+v", got, first)
		}
		if len(got.Tags) != len(first.Tags) {
			t.Fatalf("tags differ: %v vs %v", got.Tags, first.Tags)
		}
		for j := range got.Tags {
			if got.Tags[j] != first.Tags[j] {
				t.Fatalf("tags differ: %v vs %v", got.Tags, first.Tags)
			}
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Behavior.PauseGapMs = 10 // below burst gap
	if _, err := New(cfg); err == nil {
		t.Error("New() accepted invalid behavior thresholds")
	}

	cfg = config.Default()
	cfg.Rules.JapaneseDominant = 5
	if _, err := New(cfg); err == nil {
		t.Error("New() accepted invalid rules config")
	}
}
