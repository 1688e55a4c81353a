package transcripts

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a generic delimited table that preserves unknown columns. The
// reconciler edits the archived transcript through this type so rewriting
// the file never drops columns this tool does not model.
type Table struct {
	Header []string
	Rows   [][]string

	columns map[string]int
}

// ReadTable loads a delimited table verbatim.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header", path)
	}

	table := &Table{Header: records[0], Rows: records[1:]}
	table.columns = indexColumns(table.Header)
	return table, nil
}

// WriteTable persists the table back to disk.
func (t *Table) WriteTable(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return file.Close()
}

// Column returns the index of a named column, case-insensitively.
func (t *Table) Column(name string) (int, bool) {
	idx, ok := t.columns[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// Len reports the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at a row/column pair, empty when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return cell(t.Rows[row], col)
}

// SetCell assigns a value, growing the row when it is shorter than the
// header.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// DeleteRows removes the rows at the given indexes.
func (t *Table) DeleteRows(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(indexes))
	for _, idx := range indexes {
		drop[idx] = struct{}{}
	}
	kept := t.Rows[:0]
	for i, row := range t.Rows {
		if _, gone := drop[i]; gone {
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
}
