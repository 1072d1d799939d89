// Package structure analyzes the final assembled text: code blocks,
// bullet lists, Japanese-script density, and length class.
package structure

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrInvalidLimits is returned by NewAnalyzer when the length-class
// boundaries are inconsistent.
var ErrInvalidLimits = errors.New("invalid structure limits")

// Class buckets the text length.
type Class string

const (
	ClassShort  Class = "short"
	ClassMedium Class = "medium"
	ClassLong   Class = "long"
)

// Limits defines the length-class boundaries: Short below ShortMax,
// Long above LongMin, Medium between.
type Limits struct {
	ShortMax int `toml:"short_max" json:"short_max" yaml:"short_max"`
	LongMin  int `toml:"long_min" json:"long_min" yaml:"long_min"`
}

// DefaultLimits returns the default length-class boundaries.
func DefaultLimits() Limits {
	return Limits{ShortMax: 40, LongMin: 400}
}

// Validate checks boundary consistency.
func (l Limits) Validate() error {
	switch {
	case l.ShortMax <= 0:
		return fmt.Errorf("%w: short_max must be positive, got %d", ErrInvalidLimits, l.ShortMax)
	case l.LongMin <= l.ShortMax:
		return fmt.Errorf("%w: long_min (%d) must exceed short_max (%d)", ErrInvalidLimits, l.LongMin, l.ShortMax)
	}
	return nil
}

// Profile is the derived, immutable structural result.
type Profile struct {
	HasCodeBlock  bool    `json:"has_code_block"`
	HasBulletList bool    `json:"has_bullet_list"`
	JapaneseRatio float64 `json:"japanese_ratio"`
	LengthClass   Class   `json:"length_class"`
	CharCount     int     `json:"char_count"`
	LineCount     int     `json:"line_count"`
	QuestionLike  bool    `json:"question_like"`
}

// Analyzer computes structure profiles. Pure and stateless apart from
// the configured limits; safe for concurrent use.
type Analyzer struct {
	limits Limits
	md     goldmark.Markdown
}

// NewAnalyzer builds an analyzer, failing fast on inconsistent limits.
func NewAnalyzer(limits Limits) (*Analyzer, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{limits: limits, md: goldmark.New()}, nil
}

// Analyze derives a Profile from text. Empty or whitespace-only text
// yields the zero profile with ClassShort.
func (a *Analyzer) Analyze(input string) Profile {
	if strings.TrimSpace(input) == "" {
		return Profile{LengthClass: ClassShort}
	}

	lines := strings.Split(input, "\n")
	charCount := utf8.RuneCountInString(input)

	hasList, hasIndentedBlock := a.scanMarkdown(input)

	return Profile{
		HasCodeBlock:  hasFencedPair(lines) || hasIndentedBlock || hasIndentRun(lines),
		HasBulletList: hasList || countBulletLines(lines) >= 2,
		JapaneseRatio: japaneseRatio(input),
		LengthClass:   a.lengthClass(charCount),
		CharCount:     charCount,
		LineCount:     len(lines),
		QuestionLike:  strings.ContainsAny(input, "?？"),
	}
}

func (a *Analyzer) lengthClass(charCount int) Class {
	switch {
	case charCount < a.limits.ShortMax:
		return ClassShort
	case charCount > a.limits.LongMin:
		return ClassLong
	default:
		return ClassMedium
	}
}

// scanMarkdown walks the goldmark AST for list and indented-code
// structure. Lists need at least two items to count; indented code
// blocks need at least two lines.
func (a *Analyzer) scanMarkdown(input string) (hasList, hasIndentedBlock bool) {
	source := []byte(input)
	root := a.md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.List:
			items := 0
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				items++
			}
			if items >= 2 {
				hasList = true
			}
		case *ast.CodeBlock:
			if node.Lines().Len() >= 2 {
				hasIndentedBlock = true
			}
		}
		return ast.WalkContinue, nil
	})
	return hasList, hasIndentedBlock
}

// hasFencedPair reports whether fence delimiters appear in matched
// pairs. An unclosed trailing fence does not count.
func hasFencedPair(lines []string) bool {
	fences := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			fences++
		}
	}
	return fences >= 2
}

// hasIndentRun reports whether at least two consecutive non-blank lines
// share 4-space or tab indentation.
func hasIndentRun(lines []string) bool {
	run := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" && (strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")) {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

var bulletMarkers = []string{"- ", "* ", "+ "}

// countBulletLines counts lines whose first token is a recognized
// bullet or numbered-list marker.
func countBulletLines(lines []string) int {
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if isBulletLine(trimmed) {
			count++
		}
	}
	return count
}

func isBulletLine(trimmed string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	// Numbered list: digits followed by "." or ")" and a space or EOL.
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(trimmed) {
		return false
	}
	if trimmed[i] != '.' && trimmed[i] != ')' {
		return false
	}
	rest := trimmed[i+1:]
	return rest == "" || strings.HasPrefix(rest, " ")
}

// japanesePunct supplements the hiragana/katakana/kanji tables with the
// punctuation and fullwidth forms used alongside them, so a fully
// Japanese sentence scores 1.0.
var japanesePunct = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3001, Hi: 0x303F, Stride: 1}, // CJK symbols and punctuation
		{Lo: 0xFF01, Hi: 0xFF65, Stride: 1}, // fullwidth forms
	},
}

// japaneseRatio is the share of non-whitespace characters drawn from
// Japanese scripts; 0 for empty text.
func japaneseRatio(input string) float64 {
	total := 0
	japanese := 0
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han, japanesePunct) {
			japanese++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(japanese) / float64(total)
}
