package charts

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/query"
)

const (
	PriceTitle  = "Average Price of Sneakers"
	VolumeTitle = "Sneakers Sold"

	PriceColor  = "#17B897"
	VolumeColor = "#E12D39"
)

// Axis describes one chart axis. Fixed axes cannot be zoomed or panned.
type Axis struct {
	TickPrefix string `json:"tick_prefix,omitempty"`
	Fixed      bool   `json:"fixed"`
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Figure is a single-series line chart ready for the browser.
type Figure struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	HoverFormat string  `json:"hover_format,omitempty"`
	XAxis       Axis    `json:"x_axis"`
	YAxis       Axis    `json:"y_axis"`
	Points      []Point `json:"points"`
}

type Figures struct {
	Price  Figure `json:"price"`
	Volume Figure `json:"volume"`
}

func Build(res query.Result) Figures {
	return Figures{
		Price:  PriceFigure(res.Price),
		Volume: VolumeFigure(res.Volume),
	}
}

func PriceFigure(series []models.PricePoint) Figure {
	points := make([]Point, 0, len(series))
	for _, p := range series {
		points = append(points, Point{
			Label: p.Date.Format(models.DateLayout),
			Value: roundTo2(p.MeanPrice),
		})
	}

	return Figure{
		ID:          "price-chart",
		Title:       PriceTitle,
		Color:       PriceColor,
		HoverFormat: "$%.2f",
		XAxis:       Axis{Fixed: true},
		YAxis:       Axis{TickPrefix: "$", Fixed: true},
		Points:      points,
	}
}

func VolumeFigure(series []models.VolumePoint) Figure {
	points := make([]Point, 0, len(series))
	for _, v := range series {
		points = append(points, Point{
			Label: v.Date.Format(models.DateLayout),
			Value: float64(v.Units),
		})
	}

	return Figure{
		ID:     "volume-chart",
		Title:  VolumeTitle,
		Color:  VolumeColor,
		XAxis:  Axis{Fixed: true},
		YAxis:  Axis{Fixed: true},
		Points: points,
	}
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders v as US dollars with thousands separators, e.g.
// "$1,234.56" or "-$12.00".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + printer.Sprintf("$%.2f", math.Abs(v))
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
