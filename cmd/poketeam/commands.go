// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poketeam/internal/loader"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/recommend"
	"github.com/tomtom215/poketeam/internal/validation"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) int
}

var commands = map[string]command{
	"analyze":  {summary: "score entities against a partial team and complete it", run: runAnalyze},
	"counters": {summary: "rank the entities that threaten one entity", run: runCounters},
	"partners": {summary: "rank the entities that pair best with one entity", run: runPartners},
	"cores":    {summary: "list synergy cores in affinity order", run: runCores},
	"datasets": {summary: "list datasets in the data directory", run: runDatasets},
	"batch":    {summary: "process JSON-lines requests from stdin", run: runBatch},
}

// errorResponse is written to stdout when a command fails.
type errorResponse struct {
	Error *validation.ErrorBody `json:"error"`
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("poketeam "+name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}

// listFlag collects comma-separated values across repeated flags.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// parseWeights reads "counter,team,usage".
func parseWeights(s string) (*metagame.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("weights %q: want counter,team,usage", s)
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("weights %q: %w", s, err)
		}
		vals[i] = v
	}
	return &metagame.Weights{Counter: vals[0], Team: vals[1], Usage: vals[2]}, nil
}

// parseAnalyzeArgs builds an analyze request. Positional arguments are
// added to the team after -team values.
func parseAnalyzeArgs(args []string, output io.Writer) (*recommend.AnalyzeRequest, error) {
	fs := newFlagSet("analyze", output)
	dataset := fs.String("dataset", "", "dataset name (required)")
	var team listFlag
	fs.Var(&team, "team", "comma-separated team members, repeatable")
	weights := fs.String("weights", "", "counter,team,usage weights (default from config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	team = append(team, fs.Args()...)

	req := &recommend.AnalyzeRequest{Dataset: *dataset, Team: team}
	if *weights != "" {
		w, err := parseWeights(*weights)
		if err != nil {
			fmt.Fprintf(output, "poketeam analyze: %v\n", err)
			return nil, err
		}
		req.Weights = w
	}
	return req, nil
}

func parseEntityArgs(op string, args []string, output io.Writer) (*recommend.EntityRequest, error) {
	fs := newFlagSet(op, output)
	dataset := fs.String("dataset", "", "dataset name (required)")
	name := fs.String("name", "", "entity name (required)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *name == "" && fs.NArg() == 1 {
		*name = fs.Arg(0)
	}
	return &recommend.EntityRequest{Dataset: *dataset, Name: *name}, nil
}

// parseCoresArgs builds a cores request. Unset flags leave the configured
// value in place.
func parseCoresArgs(args []string, output io.Writer) (*recommend.CoresRequest, error) {
	fs := newFlagSet("cores", output)
	dataset := fs.String("dataset", "", "dataset name (required)")
	minUsage := fs.Float64("min-usage", 0, "exclude entities below this usage")
	targetEdges := fs.Int("target-edges", 0, "edge count the affinity threshold aims for")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	req := &recommend.CoresRequest{Dataset: *dataset}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-usage":
			req.MinUsage = minUsage
		case "target-edges":
			req.TargetEdges = targetEdges
		}
	})
	return req, nil
}

func runAnalyze(ctx context.Context, a *app, args []string) int {
	req, err := parseAnalyzeArgs(args, a.stderr)
	if err != nil {
		return usageStatus(err)
	}
	resp, err := a.engine.Analyze(ctx, *req)
	if err != nil {
		return a.fail(err)
	}
	return a.respond(resp)
}

func runCounters(ctx context.Context, a *app, args []string) int {
	req, err := parseEntityArgs(recommend.OpCounters, args, a.stderr)
	if err != nil {
		return usageStatus(err)
	}
	resp, err := a.engine.Counters(ctx, *req)
	if err != nil {
		return a.fail(err)
	}
	return a.respond(resp)
}

func runPartners(ctx context.Context, a *app, args []string) int {
	req, err := parseEntityArgs(recommend.OpPartners, args, a.stderr)
	if err != nil {
		return usageStatus(err)
	}
	resp, err := a.engine.Partners(ctx, *req)
	if err != nil {
		return a.fail(err)
	}
	return a.respond(resp)
}

func runCores(ctx context.Context, a *app, args []string) int {
	req, err := parseCoresArgs(args, a.stderr)
	if err != nil {
		return usageStatus(err)
	}
	resp, err := a.engine.Cores(ctx, *req)
	if err != nil {
		return a.fail(err)
	}
	return a.respond(resp)
}

// datasetSummary is one entry of the datasets listing.
type datasetSummary struct {
	Name       string       `json:"name"`
	Info       *loader.Info `json:"info,omitempty"`
	Entities   int          `json:"entities,omitempty"`
	HasThreats bool         `json:"has_threats"`
	Error      string       `json:"error,omitempty"`
}

func runDatasets(ctx context.Context, a *app, args []string) int {
	fs := newFlagSet("datasets", a.stderr)
	names := fs.Bool("names", false, "list names only without loading datasets")
	if err := fs.Parse(args); err != nil {
		return usageStatus(err)
	}

	list, err := a.store.List()
	if err != nil {
		return a.fail(err)
	}
	if *names {
		if list == nil {
			list = []string{}
		}
		return a.respond(list)
	}

	out := make([]datasetSummary, 0, len(list))
	for _, name := range list {
		s := datasetSummary{Name: name}
		ds, err := a.store.Dataset(ctx, name)
		if err != nil {
			a.logger.Warn().Err(err).Str("dataset", name).Msg("Skipping unreadable dataset")
			s.Error = err.Error()
			out = append(out, s)
			continue
		}
		if info, err := a.store.Info(ctx, name); err == nil {
			s.Info = &info
		}
		s.Entities = ds.Len()
		s.HasThreats = ds.HasThreats()
		out = append(out, s)
	}
	return a.respond(out)
}

// usageStatus maps a flag parsing error to an exit code.
func usageStatus(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	return exitUsage
}

// respond writes v as indented JSON. A response that cannot be encoded is
// reported as an internal error body so stdout always carries a document.
func (a *app) respond(v interface{}) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return a.fail(fmt.Errorf("encode response: %w", err))
	}
	if err := a.write(data); err != nil {
		a.logger.Error().Err(err).Msg("Failed to write response")
		return exitError
	}
	return exitOK
}

// fail writes err as an error body.
func (a *app) fail(err error) int {
	a.logger.Debug().Err(err).Str("status", recommend.Status(err)).Msg("Command failed")
	data, merr := json.MarshalIndent(errorResponse{Error: recommend.ErrorBody(err)}, "", "  ")
	if merr != nil {
		a.logger.Error().Err(merr).Msg("Failed to encode error response")
		return exitError
	}
	if werr := a.write(data); werr != nil {
		a.logger.Error().Err(werr).Msg("Failed to write error response")
	}
	return exitError
}

func (a *app) write(data []byte) error {
	data = append(data, '\n')
	if _, err := a.stdout.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
