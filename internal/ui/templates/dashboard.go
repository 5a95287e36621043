package templates

import (
	"fmt"

	"sneaker-dashboard/internal/charts"
	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/query"
)

//go:generate templ generate

const (
	PageTitle   = "Sneaker Analytics: Understand Your Sneakers!"
	Heading     = "Sneaker Analytics"
	Description = "Analyze the behavior of sneaker prices and the number of sneaker sold on StockX in the US between 2017 and 2019"

	SummaryID = "chart-summary"
)

// DashboardData is everything the page needs for its first paint.
type DashboardData struct {
	Regions      []string
	Brands       []string
	Sizes        []string
	DefaultBrand string
	MinDate      string
	MaxDate      string
	Figures      charts.Figures
	Summary      models.Summary
}

// ChartSignals carries both figures. The leading underscore keeps Datastar
// from echoing them back to the server on every request.
type ChartSignals struct {
	Price  charts.Figure `json:"_priceSeries"`
	Volume charts.Figure `json:"_volumeSeries"`
}

func NewChartSignals(figs charts.Figures) ChartSignals {
	return ChartSignals{Price: figs.Price, Volume: figs.Volume}
}

type signals struct {
	Region string `json:"region"`
	Brand  string `json:"brand"`
	Size   string `json:"size"`
	Start  string `json:"start"`
	End    string `json:"end"`
	ChartSignals
}

func initialSignals(d DashboardData) signals {
	return signals{
		Region:       query.AllValue,
		Brand:        d.DefaultBrand,
		Size:         query.AllValue,
		Start:        d.MinDate,
		End:          d.MaxDate,
		ChartSignals: NewChartSignals(d.Figures),
	}
}

func summaryText(s models.Summary) string {
	if s.TotalUnits == 0 {
		return "No sales match the selected filters"
	}
	return fmt.Sprintf("%s %s sold over %s %s at an average of %s",
		charts.FormatCount(s.TotalUnits), plural(s.TotalUnits, "sneaker", "sneakers"),
		charts.FormatCount(s.Days), plural(s.Days, "day", "days"),
		charts.FormatCurrency(s.MeanPrice),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func withAll(values []string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, query.AllValue)
	return append(out, values...)
}
