package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/internal/scan"
	"github.com/go-sif/brc/internal/stats"
	"github.com/go-sif/brc/internal/table"
	iutil "github.com/go-sif/brc/internal/util"
	"github.com/go-sif/brc/logging"
)

// Metrics are the Prometheus collectors a run reports into
type Metrics = stats.Metrics

// Result is the outcome of a run
type Result struct {
	RunID   uuid.UUID
	Records []brc.Record          // sorted by name
	Table   *table.Table          // the merged table, for snapshotting. Its keys reference the Source.
	Stats   brc.RuntimeStatistics // statistics describing the run
}

// scanned is what a single worker hands back to the driver
type scanned struct {
	tbl *table.Table
	err error
}

// Run aggregates every record in src. opts may be nil, in which case defaults
// are used; logger and metrics may also be nil. The Result's Records are
// copied out of src, but its Table still borrows src's bytes, so it must be
// used (or discarded) before src is closed.
func Run(ctx context.Context, src brc.Source, opts *brc.Options, logger log.Logger, metrics *Metrics) (*Result, error) {
	if opts == nil {
		opts = &brc.Options{}
	} else {
		opts = brc.CloneOptions(opts)
	}
	if err := brc.EnsureDefaultOptions(opts); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	logger = log.With(logger, "run", runID.String())

	pmap, err := src.Analyze(opts.NumWorkers, opts.SplitThreshold)
	if err != nil {
		return nil, err
	}
	data := src.Bytes()
	rs := stats.CreateRunStatistics(metrics)
	rs.Start(pmap.Len())
	defer rs.Finish()
	level.Info(logger).Log("msg", "starting run", "source", src.Name(), "bytes", len(data), "ranges", pmap.Len(), "workers", opts.NumWorkers, "policy", opts.Policy)

	results := make([]scanned, pmap.Len())
	scanner := scan.CreateScanner(opts.Policy)
	safeScan := iutil.SafeScanOperation(scanner.Scan)
	limit := semaphore.NewWeighted(int64(opts.NumWorkers))
	var wg sync.WaitGroup
	var dispatchErr error
	for idx := 0; pmap.HasNext(); idx++ {
		r := pmap.Next()
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		if err := limit.Acquire(ctx, 1); err != nil {
			dispatchErr = err
			break
		}
		wg.Add(1)
		go func(idx int, r brc.Range) {
			defer wg.Done()
			defer limit.Release(1)
			start := time.Now()
			tbl := table.New(opts.KeyHint)
			counts, err := safeScan(data, r, tbl)
			rs.EndRange(idx, start, counts.Rows, counts.Skipped, counts.Bytes)
			results[idx] = scanned{tbl: tbl, err: err}
			level.Debug(logger).Log("msg", "scanned range", "range", r, "rows", counts.Rows, "skipped", counts.Skipped, "elapsed", time.Since(start))
		}(idx, r)
	}
	wg.Wait()
	if dispatchErr != nil {
		level.Warn(logger).Log("msg", "run cancelled", "err", dispatchErr)
		return nil, dispatchErr
	}

	var errs *multierror.Error
	for i := range results {
		if results[i].err != nil {
			errs = multierror.Append(errs, results[i].err)
		}
	}
	if errs.ErrorOrNil() != nil {
		errs.ErrorFormat = iutil.FormatMultiError
		level.Error(logger).Log("msg", "run failed", "errors", len(errs.Errors))
		return nil, errs
	}

	merged := fold(results)
	records := table.Finalize(merged)
	rs.SetNumKeys(len(records))
	rs.Finish()
	level.Info(logger).Log("msg", "finished run", "keys", len(records), "rows", rs.GetNumRowsProcessed(), "skipped", rs.GetNumRowsSkipped(), "elapsed", rs.GetRuntime())
	return &Result{RunID: runID, Records: records, Table: merged, Stats: rs}, nil
}

// fold merges every worker's table into the largest one, in Range order
func fold(results []scanned) *table.Table {
	if len(results) == 0 {
		return table.New(0)
	}
	into := 0
	for i := range results {
		if results[i].tbl.Len() > results[into].tbl.Len() {
			into = i
		}
	}
	merged := results[into].tbl
	for i := range results {
		if i != into {
			merged.Merge(results[i].tbl)
			results[i].tbl = nil
		}
	}
	return merged
}

// Describe renders the statistics of a run as a single human-readable line
func Describe(rs brc.RuntimeStatistics) string {
	return fmt.Sprintf("%d rows (%d skipped), %d keys, %d bytes in %s across %d ranges",
		rs.GetNumRowsProcessed(), rs.GetNumRowsSkipped(), rs.GetNumKeys(), rs.GetNumBytesProcessed(), rs.GetRuntime(), len(rs.GetRangeRuntimes()))
}
