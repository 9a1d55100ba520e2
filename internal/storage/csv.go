package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rewired-gh/launchdash/internal/models"
)

// loadCSV reads a header-first CSV file. Columns outside the schema are ignored.
func loadCSV(path string) ([]models.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]models.LaunchRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file has no header", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []models.LaunchRecord
	row := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		rec, err := recordFromFields(
			fields[index[ColumnSite]],
			fields[index[ColumnPayloadMass]],
			fields[index[ColumnClass]],
			fields[index[ColumnBoosterCategory]],
		)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := validateRow(&rec, row); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// recordFromFields converts raw text cells into a record.
func recordFromFields(site, payload, class, booster string) (models.LaunchRecord, error) {
	mass, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return models.LaunchRecord{}, fmt.Errorf("invalid %s %q: %w", ColumnPayloadMass, payload, err)
	}
	outcome, err := parseClass(class)
	if err != nil {
		return models.LaunchRecord{}, err
	}
	return models.LaunchRecord{
		Site:            strings.TrimSpace(site),
		PayloadMassKg:   mass,
		Class:           outcome,
		BoosterCategory: strings.TrimSpace(booster),
	}, nil
}

// parseClass accepts integer codes as well as float renderings such as "1.0".
func parseClass(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid %s %q", ColumnClass, raw)
	}
	return int(f), nil
}
