package dataset

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"sneaker-dashboard/internal/models"
)

// Dataset is the immutable, date-sorted record set the query engine reads.
// It is safe for concurrent use because nothing mutates it after New.
type Dataset struct {
	records []models.Transaction
	regions []string
	brands  []string
	sizes   []string
	minDate time.Time
	maxDate time.Time

	source   string
	skipped  int
	loadedAt time.Time
}

type Option func(*Dataset)

func WithSource(source string) Option {
	return func(d *Dataset) { d.source = source }
}

func WithSkippedRows(n int) Option {
	return func(d *Dataset) { d.skipped = n }
}

// New copies records, normalizes dates to calendar days, stamps a unit
// quantity on every row and sorts by order date. Rows sharing a date keep
// their input order.
func New(records []models.Transaction, opts ...Option) *Dataset {
	d := &Dataset{
		records:  make([]models.Transaction, len(records)),
		source:   "memory",
		loadedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}

	for i, tx := range records {
		tx.OrderDate = models.Day(tx.OrderDate)
		if !tx.ReleaseDate.IsZero() {
			tx.ReleaseDate = models.Day(tx.ReleaseDate)
		}
		tx.OrderQuantity = 1
		d.records[i] = tx
	}

	slices.SortStableFunc(d.records, func(a, b models.Transaction) int {
		return a.OrderDate.Compare(b.OrderDate)
	})

	d.buildDomains()
	return d
}

func (d *Dataset) buildDomains() {
	regions := make(map[string]struct{})
	brands := make(map[string]struct{})
	sizes := make(map[string]struct{})

	for _, tx := range d.records {
		regions[tx.BuyerRegion] = struct{}{}
		if _, seen := brands[tx.Brand]; !seen {
			brands[tx.Brand] = struct{}{}
			d.brands = append(d.brands, tx.Brand)
		}
		sizes[tx.ShoeSize] = struct{}{}
	}

	d.regions = sortedKeys(regions, cmp.Compare[string])
	d.sizes = sortedKeys(sizes, compareSizes)

	if len(d.records) > 0 {
		d.minDate = d.records[0].OrderDate
		d.maxDate = d.records[len(d.records)-1].OrderDate
	}
}

func sortedKeys(set map[string]struct{}, compare func(a, b string) int) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compare)
	return keys
}

// compareSizes orders numeric labels numerically ahead of any other label.
func compareSizes(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(fa, fb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

func (d *Dataset) Len() int { return len(d.records) }

// At returns the i-th record in order-date order.
func (d *Dataset) At(i int) models.Transaction { return d.records[i] }

// Records returns a copy of the record set.
func (d *Dataset) Records() []models.Transaction { return slices.Clone(d.records) }

func (d *Dataset) Regions() []string { return slices.Clone(d.regions) }

// Brands lists brands in first-seen order.
func (d *Dataset) Brands() []string { return slices.Clone(d.brands) }

func (d *Dataset) Sizes() []string { return slices.Clone(d.sizes) }

func (d *Dataset) MinDate() time.Time { return d.minDate }

func (d *Dataset) MaxDate() time.Time { return d.maxDate }

func (d *Dataset) HasBrand(brand string) bool {
	return slices.Contains(d.brands, brand)
}

func (d *Dataset) Stats() models.DatasetStats {
	stats := models.DatasetStats{
		RecordCount: len(d.records),
		Regions:     len(d.regions),
		Brands:      len(d.brands),
		Sizes:       len(d.sizes),
		Source:      d.source,
		LoadedAt:    d.loadedAt,
		SkippedRows: d.skipped,
	}
	if len(d.records) > 0 {
		stats.MinDate = d.minDate.Format(models.DateLayout)
		stats.MaxDate = d.maxDate.Format(models.DateLayout)
	}
	return stats
}
