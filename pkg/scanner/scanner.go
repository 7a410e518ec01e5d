package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lakescan/lakescan/pkg/collector"
	"github.com/lakescan/lakescan/pkg/errors"
	"github.com/lakescan/lakescan/pkg/report"
	"github.com/lakescan/lakescan/pkg/serializer"
)

// WorkspaceScanner runs the section collectors against one workspace and
// serializes the consolidated summary. Collectors run in parallel; each
// section failure is recorded in the summary without aborting the others.
// The one exception is an authorization failure, which cancels the scan:
// a bad token fails every call the same way, so finishing is pointless.
type WorkspaceScanner struct {
	// Version is the scanner version, recorded in the report header.
	Version string

	// Factory is the collector factory to use.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default
	// stdout JSON serializer is used.
	Serializer serializer.Serializer
}

// Scan collects all sections and serializes the summary. The summary is
// returned (and serialized) even when the scan fails; a non-nil error
// means the run was fatal: authorization was rejected, or serialization
// itself failed.
func (s *WorkspaceScanner) Scan(ctx context.Context) (*report.Summary, error) {
	if s.Factory == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no collector factory configured")
	}

	slog.Debug("starting workspace scan")

	start := time.Now()
	defer func() {
		scanDuration.Observe(time.Since(start).Seconds())
	}()

	summary := report.NewSummary(s.Version)

	// scanCtx is cancelled when a collector hits an authorization error,
	// aborting the in-flight siblings. The parent ctx stays alive for
	// serialization.
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu    sync.Mutex
		fatal error
	)

	collectors := []collector.Collector{
		s.Factory.CreateClusterCollector(),
		s.Factory.CreateWarehouseCollector(),
		s.Factory.CreateCatalogCollector(),
		s.Factory.CreateJobCollector(),
		s.Factory.CreateNotebookCollector(),
	}

	g := new(errgroup.Group)
	for _, c := range collectors {
		c := c
		g.Go(func() error {
			name := string(c.Name())
			collectorStart := time.Now()
			defer func() {
				scanCollectorDuration.WithLabelValues(name).Observe(time.Since(collectorStart).Seconds())
			}()

			slog.Debug("collecting section", slog.String("section", name))

			sec, err := c.Collect(scanCtx)
			if err == nil {
				mu.Lock()
				err = summary.Attach(sec)
				mu.Unlock()
				if err == nil {
					return nil
				}
			}

			scanSectionFailures.WithLabelValues(name).Inc()
			slog.Error("section collection failed",
				slog.String("section", name), slog.String("error", err.Error()))

			mu.Lock()
			summary.MarkFailed(c.Name(), err)
			if errors.IsCode(err, errors.ErrCodeUnauthorized) && fatal == nil {
				fatal = errors.Wrap(errors.ErrCodeUnauthorized,
					fmt.Sprintf("authorization rejected while collecting %s", name), err)
			}
			mu.Unlock()

			if errors.IsCode(err, errors.ErrCodeUnauthorized) {
				cancel()
			}
			return nil
		})
	}

	// Collector errors are absorbed into the summary, never returned.
	_ = g.Wait()

	failed := summary.FailedSections()
	if len(failed) == 0 {
		scanTotal.WithLabelValues("success").Inc()
	} else {
		scanTotal.WithLabelValues("error").Inc()
	}

	slog.Debug("scan collection complete",
		slog.Int("sections", len(report.AllSections())),
		slog.Int("failed", len(failed)))

	if s.Serializer == nil {
		s.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	// The summary is written even after a fatal abort so the partial
	// inventory is not lost.
	if err := s.Serializer.Serialize(context.WithoutCancel(ctx), summary); err != nil {
		slog.Error("failed to serialize summary", slog.String("error", err.Error()))
		return summary, fmt.Errorf("failed to serialize summary: %w", err)
	}

	return summary, fatal
}
