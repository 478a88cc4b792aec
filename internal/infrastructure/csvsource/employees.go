// Package csvsource reads the HR employee export used by the seeder.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hcportal/leave-portal/internal/core/ports"
)

// Column headers of the HR export.
const (
	colNo          = "No"
	colFirstName   = "First Name"
	colMiddleName  = "Middle Name"
	colLastName    = "Last Name"
	colIqamaNo     = "Iqama No Saudi ID"
	colNationality = "Nationality"
	colGosiType    = "GOSI Type"
	colJobTitle    = "Job Title"
	colStoreCode   = "Store Code"
	colEmployeeID  = "Employee ID"
)

// ErrNoHeader is returned for an input without a header line.
var ErrNoHeader = errors.New("csv: missing header row")

// LoadEmployees reads the export at path.
func LoadEmployees(path string) ([]ports.EmployeeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open employee csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadEmployees(f)
}

// ReadEmployees parses an export. Header names are trimmed, columns are
// matched by name, missing columns read as empty, and lines with no values
// are skipped. Field values are returned untrimmed.
func ReadEmployees(r io.Reader) ([]ports.EmployeeRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read employee csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var rows []ports.EmployeeRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read employee csv: %w", err)
		}
		if blank(record) {
			continue
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		rows = append(rows, ports.EmployeeRow{
			No:          field(colNo),
			FirstName:   field(colFirstName),
			MiddleName:  field(colMiddleName),
			LastName:    field(colLastName),
			IqamaNo:     field(colIqamaNo),
			Nationality: field(colNationality),
			GosiType:    field(colGosiType),
			JobTitle:    field(colJobTitle),
			StoreCode:   field(colStoreCode),
			EmployeeID:  field(colEmployeeID),
		})
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
