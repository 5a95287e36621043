package query

import (
	"time"

	"sneaker-dashboard/internal/models"
)

// AllValue is the selector label the UI uses for "no constraint".
const AllValue = "All"

// Match constrains one categorical dimension: either any value or exactly
// one value.
type Match struct {
	value string
	exact bool
}

func Any() Match { return Match{} }

func Exactly(value string) Match { return Match{value: value, exact: true} }

// ParseMatch converts a selector value. "All" and the empty string mean Any.
func ParseMatch(s string) Match {
	if s == "" || s == AllValue {
		return Any()
	}
	return Exactly(s)
}

func (m Match) Matches(s string) bool { return !m.exact || m.value == s }

func (m Match) IsAny() bool { return !m.exact }

// Value returns the pinned value, or "" for Any.
func (m Match) Value() string { return m.value }

// String renders the selector form, so Any prints as "All".
func (m Match) String() string {
	if !m.exact {
		return AllValue
	}
	return m.value
}

// Filter selects the records that feed both charts. Brand is always pinned;
// it has no Any form.
type Filter struct {
	Region Match
	Brand  string
	Size   Match
	Start  time.Time
	End    time.Time
}

// Matches applies all constraints. Date bounds are inclusive calendar days.
func (f Filter) Matches(tx models.Transaction) bool {
	if tx.Brand != f.Brand {
		return false
	}
	if !f.Region.Matches(tx.BuyerRegion) || !f.Size.Matches(tx.ShoeSize) {
		return false
	}
	d := models.Day(tx.OrderDate)
	return !d.Before(models.Day(f.Start)) && !d.After(models.Day(f.End))
}
