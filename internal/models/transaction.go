package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Transaction is one sale. OrderQuantity is always 1; loaders stamp it and
// never read it from the source.
type Transaction struct {
	OrderDate     time.Time
	Brand         string
	SneakerName   string
	SalePrice     decimal.Decimal
	RetailPrice   decimal.Decimal
	ReleaseDate   time.Time
	ShoeSize      string
	BuyerRegion   string
	OrderQuantity int
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD wire date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

type Summary struct {
	Days       int     `json:"days"`
	TotalUnits int     `json:"total_units"`
	MeanPrice  float64 `json:"mean_price"`
}

type DatasetStats struct {
	RecordCount int       `json:"record_count"`
	Regions     int       `json:"regions"`
	Brands      int       `json:"brands"`
	Sizes       int       `json:"sizes"`
	MinDate     string    `json:"min_date"`
	MaxDate     string    `json:"max_date"`
	Source      string    `json:"source"`
	LoadedAt    time.Time `json:"loaded_at"`
	SkippedRows int       `json:"skipped_rows"`
}
