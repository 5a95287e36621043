package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"sneaker-dashboard/internal/config"
	"sneaker-dashboard/internal/models"
)

// sqlColumns is the fixed projection order used by LoadSQL.
var sqlColumns = columns{
	orderDate:   0,
	brand:       1,
	sneakerName: 2,
	salePrice:   3,
	retailPrice: 4,
	releaseDate: 5,
	shoeSize:    6,
	buyerRegion: 7,
}

// OpenSQL opens a read handle for a dataset source. source is one of
// config.SourceSQLite or config.SourcePostgres.
func OpenSQL(source, dsn string) (*sql.DB, error) {
	var driver string
	switch source {
	case config.SourceSQLite:
		driver = "sqlite"
	case config.SourcePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported sql source %q", source)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

// LoadSQL reads every row of table. Columns are scanned as text and go
// through the same parser as CSV rows, so both sources accept the same
// value formats.
func (l *Loader) LoadSQL(ctx context.Context, db *sql.DB, table string) (*Dataset, error) {
	if !config.ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	start := time.Now()
	l.logger.Info("loading dataset table", "table", table)

	query := fmt.Sprintf(`SELECT order_date, brand, sneaker_name, sale_price, retail_price,
		release_date, shoe_size, buyer_region FROM %s`, table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var (
		records []models.Transaction
		skipped int
	)
	for rows.Next() {
		var fields [8]sql.NullString
		dest := make([]any, len(fields))
		for i := range fields {
			dest[i] = &fields[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = f.String
		}

		tx, err := sqlColumns.parse(row)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", table)
	}
	if skipped > 0 {
		l.logger.Warn("skipped invalid rows", "table", table, "count", skipped)
	}

	l.logger.Info("dataset table loaded",
		"table", table,
		"records", len(records),
		"duration", time.Since(start))

	return New(records, WithSource("sql:"+table), WithSkippedRows(skipped)), nil
}

// Load dispatches on the configured source.
func (l *Loader) Load(ctx context.Context, cfg config.DatasetConfig) (*Dataset, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return l.LoadCSV(ctx, cfg.CSVFile)
	case config.SourceSQLite, config.SourcePostgres:
		db, err := OpenSQL(cfg.Source, cfg.DSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping %s: %w", cfg.Source, err)
		}
		return l.LoadSQL(ctx, db, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", cfg.Source)
	}
}
