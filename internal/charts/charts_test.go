package charts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/query"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{230, "$230.00"},
		{1234.564, "$1,234.56"},
		{1097, "$1,097.00"},
		{2500000.5, "$2,500,000.50"},
		{-12, "-$12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCurrency(tt.in); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(99956); got != "99,956" {
		t.Errorf("FormatCount() = %q, want 99,956", got)
	}
	if got := FormatCount(7); got != "7" {
		t.Errorf("FormatCount() = %q, want 7", got)
	}
}

func TestBuild(t *testing.T) {
	d1 := time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2017, 9, 2, 0, 0, 0, 0, time.UTC)

	figs := Build(query.Result{
		Price:  []models.PricePoint{{Date: d1, MeanPrice: 230}, {Date: d2, MeanPrice: 333.3333}},
		Volume: []models.VolumePoint{{Date: d1, Units: 2}, {Date: d2, Units: 3}},
	})

	if figs.Price.Title != "Average Price of Sneakers" || figs.Price.Color != "#17B897" {
		t.Errorf("price figure = %+v", figs.Price)
	}
	if figs.Price.YAxis.TickPrefix != "$" || figs.Price.HoverFormat != "$%.2f" {
		t.Errorf("price axis = %+v, hover = %q", figs.Price.YAxis, figs.Price.HoverFormat)
	}
	if figs.Volume.Title != "Sneakers Sold" || figs.Volume.Color != "#E12D39" {
		t.Errorf("volume figure = %+v", figs.Volume)
	}
	if figs.Volume.YAxis.TickPrefix != "" {
		t.Errorf("volume tick prefix = %q, want none", figs.Volume.YAxis.TickPrefix)
	}
	if !figs.Price.XAxis.Fixed || !figs.Volume.YAxis.Fixed {
		t.Error("axes should be fixed")
	}

	wantPrice := []Point{{"2017-09-01", 230}, {"2017-09-02", 333.33}}
	if diff := cmp.Diff(wantPrice, figs.Price.Points); diff != "" {
		t.Errorf("price points (-want +got):\n%s", diff)
	}
	wantVolume := []Point{{"2017-09-01", 2}, {"2017-09-02", 3}}
	if diff := cmp.Diff(wantVolume, figs.Volume.Points); diff != "" {
		t.Errorf("volume points (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptySeriesEncodeAsArrays(t *testing.T) {
	figs := Build(query.Result{Price: []models.PricePoint{}, Volume: []models.VolumePoint{}})

	raw, err := json.Marshal(figs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Price  struct{ Points []any } `json:"price"`
		Volume struct{ Points []any } `json:"volume"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Price.Points == nil || decoded.Volume.Points == nil {
		t.Errorf("empty figures should encode points as [], got %s", raw)
	}
}
