package templates

import (
	"time"

	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/query"
)

func resultFixture() query.Result {
	d := time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)
	return query.Result{
		Price:   []models.PricePoint{{Date: d, MeanPrice: 230}},
		Volume:  []models.VolumePoint{{Date: d, Units: 2}},
		Summary: models.Summary{Days: 1, TotalUnits: 2, MeanPrice: 230},
	}
}

// longResultFixture spans the full 2017-09-01 to 2019-02-13 range, one sale
// per day.
func longResultFixture() query.Result {
	var res query.Result
	start := time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, 2, 13, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		res.Price = append(res.Price, models.PricePoint{Date: d, MeanPrice: 412.37})
		res.Volume = append(res.Volume, models.VolumePoint{Date: d, Units: 1})
		res.Summary.Days++
		res.Summary.TotalUnits++
	}
	res.Summary.MeanPrice = 412.37
	return res
}
