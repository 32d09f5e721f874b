// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package main is the entry point for the poketeam command.
//
// poketeam scores candidates for a partial competitive team against a
// metagame usage dataset, completes the team with a greedy optimizer, and
// discovers cores: groups of entities that are frequently used together.
//
// # Commands
//
//	analyze   score every entity against a partial team and complete it
//	counters  rank the entities that threaten one entity most
//	partners  rank the entities that pair best with one entity
//	cores     list synergy cores in affinity order
//	datasets  list the datasets in the data directory
//	batch     process JSON-lines requests under a supervisor tree
//
// Every command writes a single JSON document to stdout. Failures are
// written as {"error":{"code":...,"message":...}} and exit with status 1.
// Usage errors exit with status 2.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (POKETEAM_DATA_DIR, POKETEAM_WEIGHT_TEAM, LOG_LEVEL, ...)
//   - Config file (-config, CONFIG_PATH, poketeam.yaml or config.yaml)
//   - Built-in defaults
//
// Logs go to stderr so stdout stays machine-readable.
//
// # Example Usage
//
//	poketeam analyze -dataset gen9ou -team "Great Tusk,Kingambit"
//	poketeam analyze -dataset gen9ou -weights 1,5,0 Gholdengo
//	poketeam counters -dataset gen9ou -name Kingambit
//	poketeam cores -dataset gen9ou -target-edges 60
//	poketeam batch < requests.jsonl > results.jsonl
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. In batch mode the
// supervisor tree is stopped and results already written are kept.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"

	"github.com/tomtom215/poketeam/internal/config"
	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metrics"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("poketeam", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	logLevel := fs.String("log-level", "", "override the configured log level")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "poketeam: unknown command %q\n\n", name)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "poketeam: %v\n", err)
		return exitError
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	initLogging(cfg, stderr)

	logger := logging.WithComponent("cli")
	logger.Debug().
		Str("command", name).
		Str("data_dir", cfg.Data.Dir).
		Str("version", version).
		Msg("Configuration loaded")

	metrics.SetAppInfo(version, runtime.Version())
	defer writeMetrics(cfg, logger)

	a, err := newApp(cfg, stdin, stdout, stderr, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize engine")
		return exitError
	}

	return cmd.run(ctx, a, fs.Args()[1:])
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: poketeam [global flags] <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")

	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "  %-9s %s\n", n, commands[n].summary)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Global flags:")
	fs.PrintDefaults()
}
