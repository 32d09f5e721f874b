// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/supervisor"
	"github.com/tomtom215/poketeam/internal/supervisor/services"
)

// runBatch serves JSON-lines requests under the supervisor tree until the
// input is exhausted or ctx is canceled.
func runBatch(ctx context.Context, a *app, args []string) int {
	fs := newFlagSet("batch", a.stderr)
	inPath := fs.String("input", "-", "request file, - for stdin")
	outPath := fs.String("output", "-", "result file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return usageStatus(err)
	}

	in, closeIn, err := openInput(*inPath, a.stdin)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to open batch input")
		return exitError
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath, a.stdout)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to open batch output")
		return exitError
	}
	defer func() {
		if err := closeOut(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing batch output")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to create supervisor tree")
		return exitError
	}

	batch := services.NewBatchService(a.engine, in, out, services.BatchServiceConfig{
		MaxLineBytes: a.cfg.Batch.MaxLineBytes,
	}, a.logger)
	tree.AddWorkerService(batch)

	janitor := services.NewCacheJanitorService(map[string]services.Sweeper{
		"datasets": a.store,
		"cores":    a.engine,
	}, a.cfg.Batch.JanitorInterval, a.logger)
	tree.AddMaintenanceService(janitor)

	a.logger.Info().
		Str("input", *inPath).
		Str("output", *outPath).
		Str("correlation_id", batch.CorrelationID()).
		Msg("Starting batch run with supervisor tree")

	return waitBatch(ctx, a, tree, batch)
}

// waitBatch runs the tree until the batch finishes, the tree stops on its
// own, or ctx is canceled.
func waitBatch(ctx context.Context, a *app, tree *supervisor.SupervisorTree, batch *services.BatchService) int {
	treeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := tree.ServeBackground(treeCtx)

	var treeErr error
	treeDone := false
	select {
	case <-batch.Done():
	case treeErr = <-errCh:
		treeDone = true
	case <-ctx.Done():
		a.logger.Warn().Msg("Batch run interrupted")
	}

	cancel()
	if !treeDone {
		treeErr = <-errCh
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) &&
		!errors.Is(treeErr, suture.ErrTerminateSupervisorTree) {
		a.logger.Error().Err(treeErr).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		a.logger.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}

	select {
	case <-batch.Done():
	default:
		return exitError
	}
	if err := batch.Err(); err != nil {
		a.logger.Error().Err(err).Msg("Batch run failed")
		return exitError
	}
	return exitOK
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied flag
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // path is an operator-supplied flag
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
