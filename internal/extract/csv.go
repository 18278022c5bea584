package extract

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dalil/internal/domain"
)

// ErrNoTitleColumn is returned when a CSV header has no "title" column.
var ErrNoTitleColumn = errors.New(`csv header must contain a "title" column`)

// ReadCSV reads one draft per row. The header row names draft fields
// ("title", "reference", "content", ...); unknown columns are ignored.
// Rows without a title are reported in rowErrs and skipped.
func ReadCSV(r io.Reader) (drafts []domain.FormDraft, rowErrs []error, err error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoTitleColumn
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]domain.Field, len(header))
	known := make([]bool, len(header))
	hasTitle := false
	for i, h := range header {
		if f, ok := domain.ParseField(h); ok {
			cols[i], known[i] = f, true
			hasTitle = hasTitle || f == domain.FieldTitle
		}
	}
	if !hasTitle {
		return nil, nil, ErrNoTitleColumn
	}

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		d := domain.NewFormDraft()
		for i, v := range rec {
			if i < len(known) && known[i] {
				if v = strings.TrimSpace(v); v != "" {
					d = d.Set(cols[i], v)
				}
			}
		}
		if err := d.Validate(); err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, rowErrs, nil
}
