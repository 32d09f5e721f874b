// PokeTeam - Team Composition Analytics and Core Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poketeam

package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/poketeam/internal/logging"
	"github.com/tomtom215/poketeam/internal/metagame"
	"github.com/tomtom215/poketeam/internal/metrics"
	"github.com/tomtom215/poketeam/internal/recommend"
	"github.com/tomtom215/poketeam/internal/validation"
)

// Error codes written in BatchResult.Error.
const (
	CodeValidation = recommend.CodeValidation
	CodeMalformed  = recommend.CodeMalformed
	CodeNotFound   = recommend.CodeNotFound
	CodeInternal   = recommend.CodeInternal
)

// DefaultMaxLineBytes bounds a single request line.
const DefaultMaxLineBytes = 1 << 20

// RecommendEngine is the subset of *recommend.Engine the batch service
// drives.
type RecommendEngine interface {
	Analyze(ctx context.Context, req recommend.AnalyzeRequest) (*recommend.AnalyzeResponse, error)
	Counters(ctx context.Context, req recommend.EntityRequest) (*recommend.RatingsResponse, error)
	Partners(ctx context.Context, req recommend.EntityRequest) (*recommend.RatingsResponse, error)
	Cores(ctx context.Context, req recommend.CoresRequest) (*recommend.CoresResponse, error)
}

// BatchRequest is one input line. Fields beyond Op and Dataset apply to the
// operations that use them.
type BatchRequest struct {
	ID      string `json:"id,omitempty"`
	Op      string `json:"op" validate:"required,oneof=analyze counters partners cores"`
	Dataset string `json:"dataset"`

	// analyze
	Team    []string          `json:"team,omitempty"`
	Weights *metagame.Weights `json:"weights,omitempty"`

	// counters, partners
	Name string `json:"name,omitempty"`

	// cores
	MinUsage    *float64 `json:"min_usage,omitempty"`
	TargetEdges *int     `json:"target_edges,omitempty"`
}

// BatchResult is one output line. Exactly one of Result and Error is set.
type BatchResult struct {
	ID     string                `json:"id,omitempty"`
	Line   int                   `json:"line"`
	Op     string                `json:"op,omitempty"`
	Status string                `json:"status"`
	Result interface{}           `json:"result,omitempty"`
	Error  *validation.ErrorBody `json:"error,omitempty"`
}

// BatchSummary counts the outcome of a run.
type BatchSummary struct {
	Lines     int64 `json:"lines"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// BatchServiceConfig configures a BatchService.
type BatchServiceConfig struct {
	// MaxLineBytes bounds a single request line.
	// Default: 1 MiB
	MaxLineBytes int
}

// BatchService reads JSON-lines requests from an input stream, runs each
// through the engine and writes one JSON-lines result per request.
//
// Every request in a run shares one correlation ID. At end of input the
// service closes Done and returns suture.ErrTerminateSupervisorTree so the
// surrounding tree shuts down. A restarted service resumes reading where the
// previous attempt stopped.
type BatchService struct {
	engine RecommendEngine
	in     *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex
	config BatchServiceConfig
	logger zerolog.Logger
	name   string

	correlationID string
	line          atomic.Int64
	succeeded     atomic.Int64
	failed        atomic.Int64

	done     chan struct{}
	doneOnce sync.Once
	errMu    sync.Mutex
	err      error
}

// NewBatchService creates a batch service reading from in and writing to out.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBatchService(engine RecommendEngine, in io.Reader, out io.Writer, cfg BatchServiceConfig, logger zerolog.Logger) *BatchService {
	if cfg.MaxLineBytes <= 0 {
		cfg.MaxLineBytes = DefaultMaxLineBytes
	}
	correlationID := logging.GenerateCorrelationID()
	return &BatchService{
		engine:        engine,
		in:            bufio.NewReaderSize(in, 64*1024),
		out:           out,
		config:        cfg,
		logger:        logger.With().Str("service", "batch").Str("correlation_id", correlationID).Logger(),
		name:          "batch-service",
		correlationID: correlationID,
		done:          make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *BatchService) Serve(ctx context.Context) error {
	ctx = logging.ContextWithCorrelationID(ctx, s.correlationID)
	s.logger.Info().Int64("resume_line", s.line.Load()).Msg("batch service starting")

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info().Msg("batch service shutting down")
			return err
		}

		raw, err := s.readLine()
		switch {
		case errors.Is(err, io.EOF):
			s.finish(nil)
			return suture.ErrTerminateSupervisorTree
		case errors.Is(err, errLineTooLong):
			n := s.line.Add(1)
			res := s.failure(BatchResult{Line: int(n)}, metrics.StatusMalformed, CodeMalformed,
				fmt.Sprintf("line exceeds %d bytes", s.config.MaxLineBytes))
			if err := s.writeResult(ctx, res); err != nil {
				return err
			}
			continue
		case err != nil:
			s.finish(err)
			return fmt.Errorf("read batch input: %w", err)
		}

		n := s.line.Add(1)
		if strings.TrimSpace(string(raw)) == "" {
			continue
		}
		if err := s.writeResult(ctx, s.process(ctx, int(n), raw)); err != nil {
			return err
		}
	}
}

var errLineTooLong = errors.New("line too long")

// readLine returns the next line without its terminator. Lines longer than
// MaxLineBytes are consumed and reported as errLineTooLong.
func (s *BatchService) readLine() ([]byte, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return nil, err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > s.config.MaxLineBytes {
				tooLong, buf = true, nil
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return nil, errLineTooLong
	}
	return buf, nil
}

// process decodes and executes one request.
func (s *BatchService) process(ctx context.Context, line int, raw []byte) BatchResult {
	res := BatchResult{Line: line}

	var req BatchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return s.failure(res, metrics.StatusMalformed, CodeMalformed, fmt.Sprintf("decode request: %v", err))
	}
	res.ID, res.Op = req.ID, req.Op

	if verr := validation.ValidateStruct(req); verr != nil {
		res.Status = metrics.StatusMalformed
		res.Error = verr.ToErrorBody()
		return res
	}

	reqCtx := logging.ContextWithNewRequestID(ctx)
	result, status, err := s.dispatch(reqCtx, &req)
	if err != nil {
		return s.fromError(res, err)
	}
	res.Status = status
	res.Result = result
	return res
}

// dispatch runs req against the engine.
func (s *BatchService) dispatch(ctx context.Context, req *BatchRequest) (result interface{}, status string, err error) {
	switch req.Op {
	case recommend.OpAnalyze:
		result, err = s.engine.Analyze(ctx, recommend.AnalyzeRequest{
			Dataset: req.Dataset,
			Team:    req.Team,
			Weights: req.Weights,
		})
	case recommend.OpCounters:
		result, err = s.engine.Counters(ctx, recommend.EntityRequest{Dataset: req.Dataset, Name: req.Name})
	case recommend.OpPartners:
		result, err = s.engine.Partners(ctx, recommend.EntityRequest{Dataset: req.Dataset, Name: req.Name})
	case recommend.OpCores:
		var resp *recommend.CoresResponse
		resp, err = s.engine.Cores(ctx, recommend.CoresRequest{
			Dataset:     req.Dataset,
			MinUsage:    req.MinUsage,
			TargetEdges: req.TargetEdges,
		})
		if err == nil && resp.TooDense {
			return resp, metrics.StatusTooDense, nil
		}
		result = resp
	default:
		err = fmt.Errorf("%w: unsupported op %q", recommend.ErrInvalidRequest, req.Op)
	}
	if err != nil {
		return nil, "", err
	}
	return result, metrics.StatusOK, nil
}

// fromError fills res from an engine error.
func (s *BatchService) fromError(res BatchResult, err error) BatchResult {
	res.Status = recommend.Status(err)
	res.Error = recommend.ErrorBody(err)
	return res
}

func (s *BatchService) failure(res BatchResult, status, code, message string) BatchResult {
	res.Status = status
	res.Error = &validation.ErrorBody{Code: code, Message: message}
	return res
}

// writeResult encodes one result line and records its outcome. A result
// that cannot be encoded is replaced by an INTERNAL_ERROR line for the same
// request.
func (s *BatchService) writeResult(ctx context.Context, res BatchResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Int("line", res.Line).
			Str("op", res.Op).
			Msg("batch result not encodable")
		res.Result = nil
		res = s.failure(res, metrics.StatusError, CodeInternal, fmt.Sprintf("encode result: %v", err))
		if data, err = json.Marshal(res); err != nil {
			return fmt.Errorf("encode line %d: %w", res.Line, err)
		}
	}
	data = append(data, '\n')

	s.outMu.Lock()
	_, err = s.out.Write(data)
	s.outMu.Unlock()
	if err != nil {
		return fmt.Errorf("write line %d: %w", res.Line, err)
	}

	if res.Error != nil {
		s.failed.Add(1)
		logging.Ctx(ctx).Debug().
			Int("line", res.Line).
			Str("op", res.Op).
			Str("code", res.Error.Code).
			Msg("batch request failed")
	} else {
		s.succeeded.Add(1)
	}
	metrics.RecordBatchRecord(res.Status)
	return nil
}

// finish records the terminal state and releases Done waiters.
func (s *BatchService) finish(err error) {
	s.doneOnce.Do(func() {
		s.errMu.Lock()
		s.err = err
		s.errMu.Unlock()

		summary := s.Summary()
		event := s.logger.Info()
		if err != nil {
			event = s.logger.Error().Err(err)
		}
		event.
			Int64("lines", summary.Lines).
			Int64("succeeded", summary.Succeeded).
			Int64("failed", summary.Failed).
			Msg("batch complete")
		close(s.done)
	})
}

// Done is closed once the input is exhausted or unreadable.
func (s *BatchService) Done() <-chan struct{} {
	return s.done
}

// Err returns the read error that ended the run, or nil after a clean EOF.
func (s *BatchService) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Summary returns the counts so far.
func (s *BatchService) Summary() BatchSummary {
	return BatchSummary{
		Lines:     s.line.Load(),
		Succeeded: s.succeeded.Load(),
		Failed:    s.failed.Load(),
	}
}

// CorrelationID returns the ID shared by every request of this run.
func (s *BatchService) CorrelationID() string {
	return s.correlationID
}

// String returns the service name for logging.
func (s *BatchService) String() string {
	return s.name
}
