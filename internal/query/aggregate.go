package query

import (
	"time"

	"github.com/shopspring/decimal"

	"sneaker-dashboard/internal/dataset"
	"sneaker-dashboard/internal/models"
)

// Result holds both chart series, one point per distinct matched date in
// ascending date order. Empty matches yield empty, non-nil series.
type Result struct {
	Price   []models.PricePoint  `json:"price"`
	Volume  []models.VolumePoint `json:"volume"`
	Summary models.Summary       `json:"summary"`
}

type dayBucket struct {
	date  time.Time
	sum   decimal.Decimal
	count int
	units int
}

// Aggregate filters ds and groups the matches by order date. It has no side
// effects and is safe to call concurrently on a shared dataset.
//
// Buckets are created in first-seen order; the dataset is date-sorted, so
// that order is ascending.
func Aggregate(ds *dataset.Dataset, f Filter) Result {
	var (
		buckets []dayBucket
		index   = make(map[int64]int)
		total   decimal.Decimal
		matched int
	)

	for i := 0; i < ds.Len(); i++ {
		tx := ds.At(i)
		if !f.Matches(tx) {
			continue
		}

		date := models.Day(tx.OrderDate)
		idx, ok := index[date.Unix()]
		if !ok {
			idx = len(buckets)
			index[date.Unix()] = idx
			buckets = append(buckets, dayBucket{date: date})
		}

		b := &buckets[idx]
		b.sum = b.sum.Add(tx.SalePrice)
		b.count++
		b.units += tx.OrderQuantity

		total = total.Add(tx.SalePrice)
		matched++
	}

	res := Result{
		Price:  make([]models.PricePoint, 0, len(buckets)),
		Volume: make([]models.VolumePoint, 0, len(buckets)),
	}

	for _, b := range buckets {
		res.Price = append(res.Price, models.PricePoint{
			Date:      b.date,
			MeanPrice: mean(b.sum, b.count),
		})
		res.Volume = append(res.Volume, models.VolumePoint{
			Date:  b.date,
			Units: b.units,
		})
		res.Summary.TotalUnits += b.units
	}

	res.Summary.Days = len(buckets)
	res.Summary.MeanPrice = mean(total, matched)
	return res
}

func mean(sum decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
}
