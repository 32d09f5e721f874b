// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

/*
Package supervisor runs the long-lived parts of a PokeTeam batch run under
suture v4.

# Overview

The tree separates request processing from cache maintenance:

	RootSupervisor ("poketeam")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService
	└── WorkerSupervisor ("worker-layer")
	    └── BatchService

A crashing janitor is restarted inside its own layer and never interrupts
the batch worker. A batch worker that fails on a write error is restarted
and resumes at the next unread input line.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddWorkerService(batch)
	tree.AddMaintenanceService(janitor)

	errCh := tree.ServeBackground(ctx)

# Configuration

TreeConfig controls restart behavior. Zero fields take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - suture.ErrDoNotRestart: finished, do not restart
  - suture.ErrTerminateSupervisorTree: stop the whole tree
  - any other error: crashed, restart with backoff

Supervisor events go through the slog bridge in internal/logging, so they
share the zerolog output of the rest of the program.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()

lists services that ignored context cancellation. The batch worker blocks
in a read on its input and is the usual entry when stdin stays open.
*/
package supervisor
