package handlers

import (
	"net/url"

	"sneaker-dashboard/internal/dataset"
	"sneaker-dashboard/internal/errors"
	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/query"
)

// filterParams is the wire form of a chart filter. The same fields arrive as
// URL query parameters on /api/charts and as Datastar signals on /sse/charts.
type filterParams struct {
	Region string `json:"region"`
	Brand  string `json:"brand"`
	Size   string `json:"size"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func paramsFromQuery(q url.Values) filterParams {
	return filterParams{
		Region: q.Get("region"),
		Brand:  q.Get("brand"),
		Size:   q.Get("size"),
		Start:  q.Get("start"),
		End:    q.Get("end"),
	}
}

// toFilter resolves blanks against the defaults: the configured brand and
// the dataset's full date range. Brand is taken verbatim, so an unknown
// brand yields empty series rather than an error. Sizes go through the same
// canonical form the loader stores, so "9.0" selects size 9.
func (p filterParams) toFilter(base query.Filter) (query.Filter, error) {
	f := base
	f.Region = query.ParseMatch(p.Region)
	f.Size = query.ParseMatch(dataset.NormalizeSize(p.Size))
	if p.Brand != "" {
		f.Brand = p.Brand
	}

	if p.Start != "" {
		start, err := models.ParseDay(p.Start)
		if err != nil {
			return query.Filter{}, errors.ValidationWrap(err, "invalid start date").
				WithField("start").
				WithDetails("expected YYYY-MM-DD, got %q", p.Start)
		}
		f.Start = start
	}
	if p.End != "" {
		end, err := models.ParseDay(p.End)
		if err != nil {
			return query.Filter{}, errors.ValidationWrap(err, "invalid end date").
				WithField("end").
				WithDetails("expected YYYY-MM-DD, got %q", p.End)
		}
		f.End = end
	}

	if f.Start.After(f.End) {
		return query.Filter{}, errors.Validation("start date is after end date").
			WithField("start").
			WithDetails("start=%s end=%s", f.Start.Format(models.DateLayout), f.End.Format(models.DateLayout))
	}
	return f, nil
}
