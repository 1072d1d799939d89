// inputlens classifies how a block of text arrived at an input field
// and suggests answer-mode tags for it.
package main

import (
	"flag"
	"fmt"
	"os"

	"inputlens/internal/config"
	"inputlens/internal/logging"
	"inputlens/internal/profile"
)

var (
	configPath = flag.String("config", "", "path to config file (.toml or .yaml)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		fatal(err)
	}

	analyzer, err := profile.New(cfg)
	if err != nil {
		fatal(err)
	}

	app := &app{cfg: cfg, logger: logger, analyzer: analyzer}

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	switch cmd {
	case "analyze":
		err = app.cmdAnalyze(args)
	case "replay":
		err = app.cmdReplay(args)
	case "simulate":
		err = app.cmdSimulate(args)
	case "watch":
		err = app.cmdWatch(args)
	case "history":
		err = app.cmdHistory(args)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `inputlens - classify input behavior and suggest answer modes

Usage: inputlens [options] <command> [args]

Commands:
  analyze             Analyze text from -text or stdin (-mode sets a hint)
  replay <timeline>   Analyze a recorded event timeline (.json/.yaml)
  simulate            Analyze text under a synthetic typing/paste timeline
  watch <file>        Re-analyze a file's structure on every save
  history             Print recently analyzed profiles
  help                Show this help message

Options:
  -config <path>  Path to config file (.toml or .yaml)`)
}
