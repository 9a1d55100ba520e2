// Package storage loads the launch dataset into an immutable in-memory table.
// It reads CSV, JSON or SQLite sources with a fixed column schema and refuses to
// produce a partial dataset: any missing column or malformed value fails the load.
//
// A Dataset is never mutated after Open returns, so it can be shared by every
// dashboard session without locking.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rewired-gh/launchdash/internal/models"
)

// Column names of the launch dataset schema.
const (
	ColumnSite            = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// Supported dataset formats.
const (
	FormatAuto   = "auto"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// DefaultTable is the SQLite table read when no table is configured.
const DefaultTable = "launches"

var (
	// ErrMissingColumn is returned when a required column is absent from the source.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFormat is returned for formats or extensions the loader does not know.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// requiredColumns lists the schema in the order records are assembled.
var requiredColumns = []string{ColumnSite, ColumnPayloadMass, ColumnClass, ColumnBoosterCategory}

// Options configures how a dataset source is read.
type Options struct {
	Format string // auto, csv, json or sqlite
	Table  string // sqlite table name

	// Remote sources only.
	Timeout        time.Duration
	MaxRetries     int
	RetryDelayBase time.Duration
}

// Dataset is a read-only, ordered set of launch records.
type Dataset struct {
	records []models.LaunchRecord
	source  string
}

// Open reads the dataset at path, a local file or an http(s) URL. The format is
// taken from opts or, for FormatAuto, from the file extension.
func Open(path string, opts Options) (*Dataset, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext is like Open. ctx bounds the download of remote sources, retries included.
func OpenContext(ctx context.Context, path string, opts Options) (*Dataset, error) {
	if isRemote(path) {
		return fetch(ctx, path, opts)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	format, err := resolveFormat(path, opts.Format)
	if err != nil {
		return nil, err
	}

	records, err := loadFile(path, format, opts.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dataset %s: %w", format, path, err)
	}

	return New(records, path), nil
}

func loadFile(path, format, table string) ([]models.LaunchRecord, error) {
	switch format {
	case FormatCSV:
		return loadCSV(path)
	case FormatJSON:
		return loadJSON(path)
	case FormatSQLite:
		if table == "" {
			table = DefaultTable
		}
		return loadSQLite(path, table)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// New wraps already loaded records. The slice is copied so later changes by the
// caller do not leak into the dataset.
func New(records []models.LaunchRecord, source string) *Dataset {
	owned := make([]models.LaunchRecord, len(records))
	copy(owned, records)
	return &Dataset{records: owned, source: source}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []models.LaunchRecord {
	out := make([]models.LaunchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

func resolveFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatCSV, FormatJSON, FormatSQLite:
		return format, nil
	case "", FormatAuto:
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// validateRow checks a freshly parsed record and annotates errors with the row number.
func validateRow(rec *models.LaunchRecord, row int) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}
