package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rewired-gh/launchdash/internal/models"

	_ "modernc.org/sqlite"
)

// loadSQLite reads every row of table in rowid order. The connection is opened
// query-only; the dataset is never written back.
func loadSQLite(path, table string) ([]models.LaunchRecord, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("set query_only: %w", err)
	}

	if err := checkColumns(db, table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY rowid",
		quoteIdent(ColumnSite),
		quoteIdent(ColumnPayloadMass),
		quoteIdent(ColumnClass),
		quoteIdent(ColumnBoosterCategory),
		quoteIdent(table),
	)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []models.LaunchRecord
	row := 0
	for rows.Next() {
		row++
		var (
			site, booster sql.NullString
			mass          sql.NullFloat64
			class         sql.NullFloat64
		)
		if err := rows.Scan(&site, &mass, &class, &booster); err != nil {
			return nil, fmt.Errorf("row %d: scan: %w", row, err)
		}
		if !mass.Valid || !class.Valid {
			return nil, fmt.Errorf("row %d: %s and %s must not be null", row, ColumnPayloadMass, ColumnClass)
		}

		outcome, err := parseClass(fmt.Sprintf("%g", class.Float64))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rec := models.LaunchRecord{
			Site:            strings.TrimSpace(nullStr(site)),
			PayloadMassKg:   mass.Float64,
			Class:           outcome,
			BoosterCategory: strings.TrimSpace(nullStr(booster)),
		}
		if err := validateRow(&rec, row); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return records, nil
}

// checkColumns reports the first schema column missing from table.
func checkColumns(db *sql.DB, table string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}

	if len(present) == 0 {
		return fmt.Errorf("table %q not found", table)
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// nullStr converts a sql.NullString to a plain string (empty if null).
func nullStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
