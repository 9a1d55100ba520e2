package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rewired-gh/launchdash/internal/models"
)

// loadJSON reads an array of objects keyed by the dataset column names.
func loadJSON(path string) ([]models.LaunchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	records := make([]models.LaunchRecord, 0, len(rows))
	for i, raw := range rows {
		row := i + 1
		for _, col := range requiredColumns {
			if _, ok := raw[col]; !ok {
				return nil, fmt.Errorf("row %d: %w: %q", row, ErrMissingColumn, col)
			}
		}

		var (
			rec   models.LaunchRecord
			class json.Number
		)
		if err := json.Unmarshal(raw[ColumnSite], &rec.Site); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColumnSite, err)
		}
		if err := json.Unmarshal(raw[ColumnPayloadMass], &rec.PayloadMassKg); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColumnPayloadMass, err)
		}
		if err := json.Unmarshal(raw[ColumnClass], &class); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColumnClass, err)
		}
		if err := json.Unmarshal(raw[ColumnBoosterCategory], &rec.BoosterCategory); err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", row, ColumnBoosterCategory, err)
		}
		if rec.Class, err = parseClass(class.String()); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		if err := validateRow(&rec, row); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
