package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hcportal/leave-portal/internal/api/metrics"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ImportDispatcher routes employee rows to a fixed set of workers using
// consistent hashing on the row's shard key, so rows that resolve to the same
// employee id are always handled by the same worker in input order.
type ImportDispatcher struct {
	numWorkers int
	importer   ports.EmployeeImporter
	log        zerolog.Logger
}

// NewImportDispatcher creates an ImportDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewImportDispatcher(numWorkers int, importer ports.EmployeeImporter, log zerolog.Logger) *ImportDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &ImportDispatcher{
		numWorkers: numWorkers,
		importer:   importer,
		log:        log,
	}
}

// tally accumulates worker results.
type tally struct {
	mu      sync.Mutex
	summary ports.ImportSummary
}

func (t *tally) add(outcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch outcome {
	case "created":
		t.summary.Created++
	case "skipped":
		t.summary.Skipped++
	default:
		t.summary.Failed++
	}
}

// Run imports rows and blocks until every enqueued row has been handled.
// Cancelling ctx stops enqueueing; rows already queued still run and are
// counted as failed if the importer gives up. A failed row never stops the
// run.
func (d *ImportDispatcher) Run(ctx context.Context, rows []ports.EmployeeRow) (ports.ImportSummary, error) {
	workers := make([]chan ports.EmployeeRow, d.numWorkers)
	for i := range workers {
		workers[i] = make(chan ports.EmployeeRow, channelBuffer)
	}

	var (
		wg  sync.WaitGroup
		res tally
	)
	for i, ch := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.runWorker(ctx, i, ch, &res)
		}()
	}

	enqueued := 0
enqueue:
	for _, row := range rows {
		idx := d.shardIndex(row.ShardKey())
		select {
		case <-ctx.Done():
			break enqueue
		case workers[idx] <- row:
			enqueued++
			metrics.SeedQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(workers[idx])))
		}
	}
	for _, ch := range workers {
		close(ch)
	}
	wg.Wait()

	summary := res.summary
	summary.Total = enqueued
	return summary, ctx.Err()
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *ImportDispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(d.numWorkers))
}

func (d *ImportDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EmployeeRow, res *tally) {
	workerID := strconv.Itoa(id)
	for row := range ch {
		metrics.SeedQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

		start := time.Now()
		outcome := "failed"
		result, err := d.importer.ImportRow(ctx, row)
		switch {
		case err != nil:
			d.log.Error().Err(err).
				Str("row", row.No).
				Str("shard_key", row.ShardKey()).
				Int("worker_id", id).
				Msg("employee row import failed")
		case result == ports.ImportCreated:
			outcome = "created"
		default:
			outcome = "skipped"
		}

		metrics.SeedRowsTotal.WithLabelValues(outcome).Inc()
		metrics.SeedRowDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		res.add(outcome)
	}
}
