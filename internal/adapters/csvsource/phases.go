package csvsource

import (
	"context"
	"fmt"

	"github.com/example/lunarlens/internal/models"
)

// PhaseReader reads the moon-phase table. Expected columns: a start
// date (MM/DD/YYYY) and a phase label, one of the four principal
// phase names; anything else is surfaced by the normalizer.
type PhaseReader struct {
	DateColumn  string
	PhaseColumn string
}

// NewPhaseReader returns a reader with the default column names.
func NewPhaseReader() *PhaseReader {
	return &PhaseReader{DateColumn: "date", PhaseColumn: "phase"}
}

// ReadPhases loads every data row as raw strings.
func (p *PhaseReader) ReadPhases(ctx context.Context, path string) ([]models.RawPhaseRow, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phases: %w", err)
	}

	dateIdx, phaseIdx := columnIndices(records[0], p.DateColumn, p.PhaseColumn)
	rows := make([]models.RawPhaseRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, models.RawPhaseRow{
			Row:   i + 1,
			Date:  field(rec, dateIdx),
			Label: field(rec, phaseIdx),
		})
	}
	return rows, nil
}
