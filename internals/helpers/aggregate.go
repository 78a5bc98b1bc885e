package helper

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RecentDays is the window used by the "recent" counters of the stats routes.
const RecentDays = 30

var hundred = decimal.NewFromInt(100)

// Percentage returns round(part/whole*100). A zero or negative whole gives 0.
func Percentage(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	return int(part.Div(whole).Mul(hundred).Round(0).IntPart())
}

// RoundHalfUp rounds x to the nearest integer, ties toward +Inf.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Utilization is current/capacity as a rounded percentage. Unset or
// non-positive capacity gives 0.
func Utilization(current int64, capacity *int) int {
	if capacity == nil || *capacity <= 0 {
		return 0
	}
	return RoundHalfUp(float64(current) / float64(*capacity) * 100)
}

// RecentWindow is the inclusive lower bound of the recent window ending at now.
func RecentWindow(now time.Time) time.Time {
	return now.AddDate(0, 0, -RecentDays)
}
