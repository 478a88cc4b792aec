package ports

import (
	"context"
	"strings"
)

// EmployeeRow is one record from the bulk import source. Values are raw and
// untrimmed.
type EmployeeRow struct {
	No          string
	FirstName   string
	MiddleName  string
	LastName    string
	IqamaNo     string
	Nationality string
	GosiType    string
	JobTitle    string
	StoreCode   string
	EmployeeID  string
}

// ShardKey identifies the row for worker sharding. Rows with an explicit
// employee id shard by it; the rest by their name and iqama fields.
func (r EmployeeRow) ShardKey() string {
	if id := strings.TrimSpace(r.EmployeeID); id != "" {
		return id
	}
	return strings.Join([]string{
		strings.TrimSpace(r.FirstName),
		strings.TrimSpace(r.MiddleName),
		strings.TrimSpace(r.LastName),
		strings.TrimSpace(r.IqamaNo),
	}, "|")
}

// ImportOutcome is the result of importing a single row.
type ImportOutcome int

const (
	ImportCreated ImportOutcome = iota
	ImportSkipped
)

// EmployeeImporter imports one row with insert-if-absent semantics.
type EmployeeImporter interface {
	ImportRow(ctx context.Context, row EmployeeRow) (ImportOutcome, error)
}

// ImportSummary aggregates a bulk import run.
type ImportSummary struct {
	Total   int
	Created int
	Skipped int
	Failed  int
}
