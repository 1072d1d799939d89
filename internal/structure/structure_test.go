package structure

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAnalyzeEmptyAndWhitespace(t *testing.T) {
	a := mustAnalyzer(t)
	for _, input := range []string{"", "   ", "\n\t \n"} {
		got := a.Analyze(input)
		want := Profile{LengthClass: ClassShort}
		if got != want {
			t.Errorf("Analyze(%q) = %+v, want zero profile with ClassShort", input, got)
		}
	}
}

func TestCodeBlockDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "matched fence pair",
			text: "look at this:\n```go\nfmt.Println(1)\n```\nthanks",
			want: true,
		},
		{
			name: "unclosed fence does not count",
			text: "start\n```go\nfmt.Println(1)",
			want: false,
		},
		{
			name: "two-line indent run",
			text: "example:\n\n    x := 1\n    y := 2\n",
			want: true,
		},
		{
			name: "tab indent run",
			text: "example:\n\n\tx := 1\n\ty := 2\n",
			want: true,
		},
		{
			name: "single indented line",
			text: "example:\n\n    x := 1\nplain again",
			want: false,
		},
		{
			name: "plain prose",
			text: "just a sentence about code, no block here.",
			want: false,
		},
	}

	a := mustAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Analyze(tt.text).HasCodeBlock; got != tt.want {
				t.Errorf("HasCodeBlock = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestBulletListDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"dash bullets", "- first\n- second", true},
		{"star bullets", "* first\n* second", true},
		{"plus bullets", "+ first\n+ second", true},
		{"numbered dot", "1. first\n2. second", true},
		{"numbered paren", "1) first\n2) second", true},
		{"indented bullets", "  - first\n  - second", true},
		{"single bullet", "- only one item", false},
		{"prose with dashes", "a - b - c on one line", false},
	}

	a := mustAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Analyze(tt.text).HasBulletList; got != tt.want {
				t.Errorf("HasBulletList = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestJapaneseRatio(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"fully japanese", "これはテストです。", 1.0},
		{"kanji", "日本語", 1.0},
		{"ascii only", "hello world", 0.0},
		{"half and half", "abこれ", 0.5},
		{"whitespace excluded", "これ は", 1.0},
	}

	a := mustAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text).JapaneseRatio
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JapaneseRatio(%q) = %g, want %g", tt.text, got, tt.want)
			}
		})
	}
}

func TestLengthClass(t *testing.T) {
	a := mustAnalyzer(t)
	tests := []struct {
		name string
		text string
		want Class
	}{
		{"short", "brief note", ClassShort},
		{"boundary short max is medium", strings.Repeat("a", 40), ClassMedium},
		{"medium", strings.Repeat("a", 200), ClassMedium},
		{"boundary long min is medium", strings.Repeat("a", 400), ClassMedium},
		{"long", strings.Repeat("a", 401), ClassLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Analyze(tt.text).LengthClass; got != tt.want {
				t.Errorf("LengthClass = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQuestionLike(t *testing.T) {
	a := mustAnalyzer(t)
	if !a.Analyze("what does this do?").QuestionLike {
		t.Error("ascii question mark not detected")
	}
	if !a.Analyze("これは何ですか？").QuestionLike {
		t.Error("fullwidth question mark not detected")
	}
	if a.Analyze("a plain statement.").QuestionLike {
		t.Error("false positive question detection")
	}
}

func TestAnalyzeWhitespaceStability(t *testing.T) {
	a := mustAnalyzer(t)
	base := "- first\n- second\nplus a closing remark"
	padded := "\n  " + base + "  \n\n"

	got := a.Analyze(base)
	pad := a.Analyze(padded)

	// Surrounding whitespace may shift raw counts but never the
	// structural booleans or the script ratio.
	if got.HasBulletList != pad.HasBulletList ||
		got.HasCodeBlock != pad.HasCodeBlock ||
		got.QuestionLike != pad.QuestionLike ||
		math.Abs(got.JapaneseRatio-pad.JapaneseRatio) > 1e-9 {
		t.Errorf("structure changed under padding: %+v vs %+v", got, pad)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	a := mustAnalyzer(t)
	text := "```\ncode\n```\n- a\n- b\nこれはテストです。"
	first := a.Analyze(text)
	for i := 0; i < 10; i++ {
		if got := a.Analyze(text); got != first {
			t.Fatalf("Analyze() call %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestLimitsValidation(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Errorf("default limits invalid: %v", err)
	}

	bad := []Limits{
		{ShortMax: 0, LongMin: 400},
		{ShortMax: 40, LongMin: 40},
		{ShortMax: 40, LongMin: 10},
	}
	for _, l := range bad {
		if _, err := NewAnalyzer(l); !errors.Is(err, ErrInvalidLimits) {
			t.Errorf("NewAnalyzer(%+v) error = %v, want ErrInvalidLimits", l, err)
		}
	}
}
