// Package pipeline runs one table pull end to end: fetch the response,
// dispatch on the declared format, and persist (or dump) the result.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scbtools/tablepull/internal/dataset"
	"github.com/scbtools/tablepull/internal/fetch"
	"github.com/scbtools/tablepull/internal/metrics"
	"github.com/scbtools/tablepull/internal/normalize"
	"github.com/scbtools/tablepull/internal/query"
	"github.com/scbtools/tablepull/internal/sink"
)

// Pipeline wires one dataset to the API client and the output sink.
type Pipeline struct {
	Dataset dataset.Dataset
	Client  *fetch.Client
	Sink    *sink.Writer
	Logger  *zap.Logger
	// Stdout receives the raw body when the declared format is unrecognized.
	Stdout io.Writer
}

// Result summarizes one finished run. OutputPath is empty when no file was
// written (the unknown-format terminal state).
type Result struct {
	RunID      string
	Format     Format
	OutputPath string
	Rows       int
}

// Run executes one fetch-dispatch-persist cycle for an already-loaded query
// spec. Every failure aborts immediately; there is no retry.
func (p Pipeline) Run(ctx context.Context, spec query.Spec) (Result, error) {
	metrics.Init()

	runID := uuid.NewString()
	logger := p.Logger.With(
		zap.String("run_id", runID),
		zap.String("dataset", p.Dataset.Name),
		zap.String("table_id", spec.TableID),
	)
	start := time.Now()

	res, err := p.run(ctx, logger, spec)
	res.RunID = runID
	if err != nil {
		metrics.ObserveRun(p.Dataset.Name, "error", time.Since(start))
		logger.Error("run failed", zap.Error(err))
		return res, err
	}

	metrics.ObserveRun(p.Dataset.Name, res.Format.String(), time.Since(start))
	return res, nil
}

func (p Pipeline) run(ctx context.Context, logger *zap.Logger, spec query.Spec) (Result, error) {
	body, err := p.Client.FetchTable(ctx, p.Dataset.AreaPath, spec.TableID, spec.Payload)
	if err != nil {
		return Result{}, err
	}
	metrics.ObserveFetch(p.Dataset.Name, len(body))

	format := ParseFormat(spec.ResponseFormat())
	switch format {
	case FormatCSV:
		table, err := normalize.Normalize(body, p.Dataset)
		if err != nil {
			return Result{Format: format}, err
		}
		path, err := p.Sink.WriteCSV(p.Dataset.OutputFile, table)
		if err != nil {
			return Result{Format: format}, err
		}
		metrics.ObserveRowsWritten(p.Dataset.Name, len(table.Rows))
		logger.Info("data saved",
			zap.String("path", path),
			zap.Int("rows", len(table.Rows)),
		)
		return Result{Format: format, OutputPath: path, Rows: len(table.Rows)}, nil

	case FormatPX:
		path, err := p.Sink.WriteRaw(spec.TableID+".px", body)
		if err != nil {
			return Result{Format: format}, err
		}
		logger.Info("pc-axis file saved", zap.String("path", path))
		return Result{Format: format, OutputPath: path}, nil

	default:
		// Not an error: dump the body instead of persisting anything.
		logger.Warn("response format not recognized, printing raw body",
			zap.String("declared_format", spec.ResponseFormat()),
		)
		fmt.Fprintln(p.Stdout, "Response format not recognized. Raw response:")
		fmt.Fprintln(p.Stdout, string(body))
		return Result{Format: FormatUnknown}, nil
	}
}
