package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"sneaker-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Loader builds datasets from the configured source.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadCSV reads a sales export. Rows that fail to parse are skipped and
// counted; a file without a single valid row is an error.
func (l *Loader) LoadCSV(ctx context.Context, filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	l.logger.Info("processing CSV file", "filename", filename)

	records, skipped, err := l.readCSV(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("process csv: %w", err)
	}

	duration := time.Since(start)
	l.logger.Info("csv processing complete",
		"records", len(records),
		"skipped", skipped,
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(len(records))/duration.Seconds()))

	return New(records, WithSource("csv:"+filename), WithSkippedRows(skipped)), nil
}

func (l *Loader) readCSV(ctx context.Context, r io.Reader) ([]models.Transaction, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		records []models.Transaction
		skipped int
	)
	batch := make([][]string, 0, batchSize)

	flush := func() error {
		parsed, bad, err := l.parseBatch(ctx, cols, batch)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		skipped += bad
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				l.logger.Debug("skipping malformed csv line", "line", parseErr.Line, "error", parseErr.Err)
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, 0, err
			}
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, 0, err
		}
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid records found")
	}

	if skipped > 0 {
		l.logger.Warn("skipped invalid rows", "count", skipped)
	}

	return records, skipped, nil
}

// parseBatch parses rows concurrently and returns the valid ones in their
// original order.
func (l *Loader) parseBatch(ctx context.Context, cols columns, batch [][]string) ([]models.Transaction, int, error) {
	parsed := make([]models.Transaction, len(batch))
	valid := make([]bool, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, row := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			tx, err := cols.parse(row)
			if err != nil {
				return nil
			}
			parsed[i] = tx
			valid[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	out := make([]models.Transaction, 0, len(batch))
	for i, ok := range valid {
		if ok {
			out = append(out, parsed[i])
		}
	}
	return out, len(batch) - len(out), nil
}
