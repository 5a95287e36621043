package models

import (
	"encoding/json"
	"time"
)

// PricePoint is the mean sale price of one calendar date.
type PricePoint struct {
	Date      time.Time
	MeanPrice float64
}

func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date      string  `json:"date"`
		MeanPrice float64 `json:"mean_price"`
	}{p.Date.Format(DateLayout), p.MeanPrice})
}

// VolumePoint is the number of units sold on one calendar date.
type VolumePoint struct {
	Date  time.Time
	Units int
}

func (v VolumePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string `json:"date"`
		Units int    `json:"units"`
	}{v.Date.Format(DateLayout), v.Units})
}
