package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"inputlens/internal/profile"
	"inputlens/internal/rules"
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

var (
	tagColor   = color.New(color.FgCyan, color.Bold)
	modeColor  = color.New(color.FgYellow)
	fieldColor = color.New(color.Faint)
)

// printProfile writes either the JSON profile or a short human summary
// with the tags one per line.
func printProfile(w io.Writer, p *profile.InputProfile, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Fprintf(w, "%s %s\n", fieldColor.Sprint("mode:"), modeColor.Sprint(string(p.Behavior.Mode)))
	fmt.Fprintf(w, "%s %.2f  %s %d  %s %d  %s %.1f\n",
		fieldColor.Sprint("paste-likelihood:"), p.Behavior.PasteLikelihood,
		fieldColor.Sprint("bursts:"), p.Behavior.BurstCount,
		fieldColor.Sprint("pauses:"), p.Behavior.PauseCount,
		fieldColor.Sprint("chars/s:"), p.Behavior.AvgCharsPerSecond)
	fmt.Fprintf(w, "%s code=%t bullets=%t ja=%.2f length=%s\n",
		fieldColor.Sprint("structure:"),
		p.Structure.HasCodeBlock, p.Structure.HasBulletList,
		p.Structure.JapaneseRatio, p.Structure.LengthClass)

	if len(p.Tags) == 0 {
		fmt.Fprintln(w, "no tags matched")
		return nil
	}
	for _, t := range p.Tags {
		fmt.Fprintln(w, tagColor.Sprint(string(t)))
	}
	return nil
}

func joinTags(tags []rules.Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
