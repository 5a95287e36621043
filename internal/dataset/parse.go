package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sneaker-dashboard/internal/models"
)

const (
	colOrderDate   = "orderdate"
	colBrand       = "brand"
	colSneakerName = "sneakername"
	colSalePrice   = "saleprice"
	colRetailPrice = "retailprice"
	colReleaseDate = "releasedate"
	colShoeSize    = "shoesize"
	colBuyerRegion = "buyerregion"
)

var requiredColumns = []string{
	colOrderDate, colSalePrice, colReleaseDate, colBuyerRegion, colBrand, colShoeSize,
}

// StockX exports use short US dates ("9/1/17"); the rest cover ISO exports
// and timestamps returned by SQL drivers.
var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"01/02/2006",
	models.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// columns maps normalized header names to field positions. Missing
// optional columns hold -1.
type columns struct {
	orderDate   int
	brand       int
	sneakerName int
	salePrice   int
	retailPrice int
	releaseDate int
	shoeSize    int
	buyerRegion int
}

// normalizeHeader strips every whitespace rune and lowercases, so
// "Order Date" and " order_date" style variants line up.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.Join(strings.Fields(h), "")
	h = strings.ReplaceAll(h, "_", "")
	return strings.ToLower(h)
}

func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	return columns{
		orderDate:   lookup(colOrderDate),
		brand:       lookup(colBrand),
		sneakerName: lookup(colSneakerName),
		salePrice:   lookup(colSalePrice),
		retailPrice: lookup(colRetailPrice),
		releaseDate: lookup(colReleaseDate),
		shoeSize:    lookup(colShoeSize),
		buyerRegion: lookup(colBuyerRegion),
	}, nil
}

func (c columns) parse(row []string) (models.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	orderDate, err := parseDate(field(c.orderDate))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("order date: %w", err)
	}

	salePrice, err := parsePrice(field(c.salePrice))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("sale price: %w", err)
	}
	if !salePrice.IsPositive() {
		return models.Transaction{}, fmt.Errorf("sale price must be positive, got %s", salePrice)
	}

	releaseDate, err := parseDate(field(c.releaseDate))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("release date: %w", err)
	}

	tx := models.Transaction{
		OrderDate:     orderDate,
		Brand:         field(c.brand),
		SneakerName:   field(c.sneakerName),
		SalePrice:     salePrice,
		ReleaseDate:   releaseDate,
		ShoeSize:      NormalizeSize(field(c.shoeSize)),
		BuyerRegion:   field(c.buyerRegion),
		OrderQuantity: 1,
	}

	if tx.Brand == "" || tx.BuyerRegion == "" || tx.ShoeSize == "" {
		return models.Transaction{}, fmt.Errorf("empty categorical field")
	}

	// Retail price is informational; a bad value is dropped, not fatal.
	if retail, err := parsePrice(field(c.retailPrice)); err == nil {
		tx.RetailPrice = retail
	}

	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parsePrice accepts plain decimals and currency strings like "$1,097".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty price")
	}
	return decimal.NewFromString(s)
}

// NormalizeSize renders numeric sizes canonically ("9.0" -> "9") and
// leaves any other label untouched.
func NormalizeSize(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
