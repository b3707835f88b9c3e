package models

import (
	"fmt"
	"strconv"
)

// ValidOHLCDays lists the day ranges CoinGecko's OHLC endpoint accepts,
// in ascending order. "max" is represented separately by DayRangeMax and is
// never produced by snapping.
var ValidOHLCDays = []int{1, 7, 14, 30, 90, 180, 365}

// DayRange is a snapped OHLC time range in days. DayRangeMax means the full
// available history.
type DayRange int

// DayRangeMax requests the coin's entire price history.
const DayRangeMax DayRange = -1

// SnapDays rounds a requested day count to the closest member of
// ValidOHLCDays by absolute distance. Ties resolve to the earlier member in
// ascending order, so SnapDays(4) == 1 and SnapDays(45) == 30.
func SnapDays(days int) DayRange {
	best := ValidOHLCDays[0]
	for _, valid := range ValidOHLCDays[1:] {
		if abs(valid-days) < abs(best-days) {
			best = valid
		}
	}
	return DayRange(best)
}

// ParseDayRange parses a requested range: "max" passes through, numeric
// values snap to the closest valid range.
func ParseDayRange(s string) (DayRange, error) {
	if s == "max" {
		return DayRangeMax, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day range %q", s)
	}
	return SnapDays(days), nil
}

// String renders the range as the query value the OHLC endpoint expects.
func (d DayRange) String() string {
	if d == DayRangeMax {
		return "max"
	}
	return strconv.Itoa(int(d))
}

// Days returns the numeric day count, or 0 for DayRangeMax.
func (d DayRange) Days() int {
	if d == DayRangeMax {
		return 0
	}
	return int(d)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
