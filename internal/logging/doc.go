// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

// Package logging provides the zerolog-based structured logger shared by
// every PokeTeam component.
//
// Logs go to stderr so that command output on stdout stays machine-readable.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "console"})
//
//	logger := logging.Logger()
//	logger.Info().Str("dataset", name).Msg("dataset loaded")
//
// # Components
//
// Long-lived objects keep a child logger tagged with their component name:
//
//	logger := logging.WithComponent("loader")
//	logger.Debug().Str("path", path).Msg("reading dataset")
//
// # Request Context
//
// Each engine call runs under a request ID. A batch run additionally carries
// a correlation ID shared by every request it issues. Ctx attaches whichever
// are present:
//
//	ctx = logging.ContextWithNewRequestID(ctx)
//	logging.Ctx(ctx).Info().Msg("analyze")
//	// {"level":"info","request_id":"...","message":"analyze"}
//
// # slog Bridge
//
// NewSlogLogger exposes the same zerolog backend as a *slog.Logger for
// libraries that only speak slog, such as the suture event hook.
package logging
