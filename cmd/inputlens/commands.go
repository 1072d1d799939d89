package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inputlens/internal/behavior"
	"inputlens/internal/config"
	"inputlens/internal/event"
	"inputlens/internal/profile"
	"inputlens/internal/rules"
	"inputlens/internal/store"
	"inputlens/internal/watcher"
)

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	analyzer *profile.Analyzer
}

// cmdAnalyze classifies text supplied via -text or stdin. Without a
// timeline the behavior analyzer is bypassed by the -mode hint.
func (a *app) cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	text := fs.String("text", "", "text to analyze (default: read stdin)")
	mode := fs.String("mode", "typed", "mode hint when no timeline exists: typed or paste")
	timeline := fs.String("timeline", "", "path to an event timeline (.json/.yaml)")
	mismatch := fs.Bool("lang-mismatch", false, "signal a source/target language mismatch")
	jsonOut := fs.Bool("json", false, "print the full profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := readText(*text)
	if err != nil {
		return err
	}

	ctx := rules.Context{LanguageMismatch: *mismatch}

	var p *profile.InputProfile
	if *timeline != "" {
		seq, err := event.LoadTimeline(*timeline)
		if err != nil {
			return err
		}
		p = a.analyzer.AnalyzeTimeline(seq, input, ctx)
	} else {
		hint, err := parseHint(*mode)
		if err != nil {
			return err
		}
		p = a.analyzer.AnalyzeWithHint(hint, input, ctx)
	}

	a.record(p)
	return printProfile(os.Stdout, p, *jsonOut)
}

// cmdReplay analyzes a recorded timeline. The final text is taken from
// -text or reconstructed naively by concatenating insertions.
func (a *app) cmdReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	text := fs.String("text", "", "final text (default: concatenated insertions)")
	mismatch := fs.Bool("lang-mismatch", false, "signal a source/target language mismatch")
	jsonOut := fs.Bool("json", false, "print the full profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: inputlens replay [options] <timeline.json|yaml>")
	}

	seq, err := event.LoadTimeline(fs.Arg(0))
	if err != nil {
		return err
	}

	input := *text
	if input == "" {
		var sb strings.Builder
		for _, ev := range seq.Events() {
			sb.WriteString(ev.InsertedText)
		}
		input = sb.String()
	}

	p := a.analyzer.AnalyzeTimeline(seq, input, rules.Context{LanguageMismatch: *mismatch})
	a.record(p)
	return printProfile(os.Stdout, p, *jsonOut)
}

// cmdSimulate synthesizes a timeline for the given text and analyzes
// it, mirroring real typed/paste capture without an editor in the loop.
func (a *app) cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	text := fs.String("text", "", "text to analyze (default: read stdin)")
	mode := fs.String("mode", "typed", "timeline shape: typed, paste, or mixed")
	wpm := fs.Int("wpm", 60, "typing speed for typed/mixed timelines")
	jsonOut := fs.Bool("json", false, "print the full profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := readText(*text)
	if err != nil {
		return err
	}

	var seq event.Sequence
	switch *mode {
	case "typed":
		seq = event.TypedTimeline(input, *wpm)
	case "paste":
		seq = event.PastedTimeline(input)
	case "mixed":
		seq = event.MixedTimeline(input, *wpm)
	default:
		return fmt.Errorf("unknown simulate mode %q (want typed, paste, or mixed)", *mode)
	}

	p := a.analyzer.AnalyzeTimeline(seq, input, rules.Context{})
	a.record(p)
	return printProfile(os.Stdout, p, *jsonOut)
}

// cmdWatch re-runs structure analysis whenever the file settles after a
// save. No timeline exists for watched files, so analysis is
// structure-only with a typed hint.
func (a *app) cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	debounceMs := fs.Int("debounce-ms", 500, "quiet interval before re-analysis")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: inputlens watch [options] <file>")
	}
	path := fs.Arg(0)

	w, err := watcher.New(path, time.Duration(*debounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info("watching", "path", path)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ch, ok := <-w.Changes():
			if !ok {
				return nil
			}
			data, err := os.ReadFile(ch.Path)
			if err != nil {
				a.logger.Warn("read failed", "path", ch.Path, "error", err)
				continue
			}
			p := a.analyzer.AnalyzeWithHint(behavior.HintTyped, string(data), rules.Context{})
			fmt.Printf("\n-- %s (%d bytes) --\n", ch.Timestamp.Format(time.TimeOnly), ch.Size)
			if err := printProfile(os.Stdout, p, false); err != nil {
				return err
			}
		case err, ok := <-w.Errors():
			if ok && err != nil {
				a.logger.Warn("watch error", "error", err)
			}
		case <-sigs:
			return nil
		}
	}
}

// cmdHistory prints recently stored profiles.
func (a *app) cmdHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 10, "number of profiles to show")
	jsonOut := fs.Bool("json", false, "print profiles as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := store.Open(a.cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	profiles, err := s.Recent(*n)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No analyzed profiles recorded.")
		return nil
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}
	for _, p := range profiles {
		fmt.Printf("%s  %s  mode=%-6s  tags=%s\n",
			p.AnalyzedAt.Format(time.RFC3339), p.ID[:8], p.Behavior.Mode, joinTags(p.Tags))
	}
	return nil
}

// record saves a finalized profile when history is enabled. Storage
// failures are logged, never fatal: classification output still stands.
func (a *app) record(p *profile.InputProfile) {
	if !a.cfg.History.Enabled {
		return
	}
	s, err := store.Open(a.cfg.History.Path)
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return
	}
	defer s.Close()
	if err := s.Save(p); err != nil {
		a.logger.Warn("history save failed", "error", err)
	}
}

func readText(fromFlag string) (string, error) {
	if fromFlag != "" {
		return fromFlag, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func parseHint(mode string) (behavior.Hint, error) {
	switch mode {
	case "typed":
		return behavior.HintTyped, nil
	case "paste":
		return behavior.HintPaste, nil
	default:
		return "", fmt.Errorf("unknown mode hint %q (want typed or paste)", mode)
	}
}
