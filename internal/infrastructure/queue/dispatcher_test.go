package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hcportal/leave-portal/internal/core/ports"
)

// recordingImporter creates each shard key once and records the order rows
// arrive in per key.
type recordingImporter struct {
	mu     sync.Mutex
	seen   map[string][]string
	failOn string
}

func newRecordingImporter() *recordingImporter {
	return &recordingImporter{seen: make(map[string][]string)}
}

func (r *recordingImporter) ImportRow(_ context.Context, row ports.EmployeeRow) (ports.ImportOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row.No == r.failOn {
		return ports.ImportSkipped, errors.New("boom")
	}
	key := row.ShardKey()
	r.seen[key] = append(r.seen[key], row.No)
	if len(r.seen[key]) > 1 {
		return ports.ImportSkipped, nil
	}
	return ports.ImportCreated, nil
}

func TestImportDispatcher_Run(t *testing.T) {
	importer := newRecordingImporter()
	importer.failOn = "r-fail"

	var rows []ports.EmployeeRow
	for i := 0; i < 50; i++ {
		rows = append(rows, ports.EmployeeRow{No: fmt.Sprintf("%d", i), EmployeeID: fmt.Sprintf("HC%d", 5000+i)})
	}
	// duplicates of the first ten, in order after the originals
	for i := 0; i < 10; i++ {
		rows = append(rows, ports.EmployeeRow{No: fmt.Sprintf("dup-%d", i), EmployeeID: fmt.Sprintf("HC%d", 5000+i)})
	}
	rows = append(rows, ports.EmployeeRow{No: "r-fail", EmployeeID: "HC9999"})

	d := NewImportDispatcher(4, importer, zerolog.Nop())
	summary, err := d.Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ports.ImportSummary{Total: 61, Created: 50, Skipped: 10, Failed: 1}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}

	for i := 0; i < 10; i++ {
		got := importer.seen[fmt.Sprintf("HC%d", 5000+i)]
		if len(got) != 2 || got[0] != fmt.Sprintf("%d", i) {
			t.Fatalf("rows for the same key must be handled in input order, got %v", got)
		}
	}
}

func TestImportDispatcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewImportDispatcher(2, newRecordingImporter(), zerolog.Nop())
	summary, err := d.Run(ctx, []ports.EmployeeRow{{No: "1", EmployeeID: "HC1"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Total > 1 {
		t.Fatalf("unexpected total %d", summary.Total)
	}
}

func TestImportDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewImportDispatcher(0, newRecordingImporter(), zerolog.Nop())
	if d.numWorkers != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, d.numWorkers)
	}
	first := d.shardIndex("HC5001")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("HC5001"); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= defaultWorkers {
		t.Fatalf("shard index out of range: %d", first)
	}
}
