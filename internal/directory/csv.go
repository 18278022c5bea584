package directory

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dalil/internal/domain"
)

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Entries []domain.DirectoryEntry
	Skipped int
	Errors  []error
}

// CSV columns: name, type, address, phone, email, website, description.
// A first row whose first cell is "name" is treated as a header. Rows with
// an empty name are skipped.
func ImportCSV(r io.Reader, cat domain.DirectoryCategory) (ImportResult, error) {
	if !knownCategory(cat) {
		return ImportResult{}, fmt.Errorf("import csv: unknown category %q", cat)
	}
	res := ImportResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		col := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		if col(0) == "" {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, domain.DirectoryEntry{
			Category:    cat,
			Name:        col(0),
			Type:        col(1),
			Address:     col(2),
			Phone:       col(3),
			Email:       col(4),
			Website:     col(5),
			Description: col(6),
		})
	}
	return res, nil
}
