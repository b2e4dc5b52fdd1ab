package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DataYear is the year of the trending data set, used for days-in-month.
const DataYear = 2018

// Months are the accepted month names, case-sensitive.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DateSelector is a parsed "Month" or "Month d1,d2,..." filter. The zero value
// matches every row.
type DateSelector struct {
	Month time.Month
	Days  []int
}

// IsZero reports whether the selector filters nothing.
func (d DateSelector) IsZero() bool {
	return d.Month == 0
}

// Match reports whether t falls in the selected month and, when days are
// given, on one of the selected days. Only month and day are compared.
func (d DateSelector) Match(t time.Time) bool {
	if d.IsZero() {
		return true
	}
	t = t.UTC()
	if t.Month() != d.Month {
		return false
	}
	if len(d.Days) == 0 {
		return true
	}
	day := t.Day()
	for _, want := range d.Days {
		if day == want {
			return true
		}
	}
	return false
}

// MonthIndex returns the time.Month for a month abbreviation.
func MonthIndex(name string) (time.Month, bool) {
	for i, m := range Months {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// leapYear is any leap year; selectors accept every day a month can have.
const leapYear = 2016

// DaysIn returns the number of days of a month in DataYear.
func DaysIn(m time.Month) int {
	return time.Date(DataYear, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MaxDaysIn returns the most days a month has in any year (29 for February).
func MaxDaysIn(m time.Month) int {
	return time.Date(leapYear, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDateSelector parses "" (no filter), "Jan", or "Jan 1,2,3".
func ParseDateSelector(s string) (DateSelector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateSelector{}, nil
	}

	monthStr, daysStr, hasDays := strings.Cut(s, " ")
	month, ok := MonthIndex(monthStr)
	if !ok {
		return DateSelector{}, fmt.Errorf("%w: %q", ErrUnknownMonth, monthStr)
	}

	sel := DateSelector{Month: month}
	if !hasDays {
		return sel, nil
	}

	limit := MaxDaysIn(month)
	for _, part := range strings.Split(strings.TrimSpace(daysStr), ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 1 || day > limit {
			return DateSelector{}, fmt.Errorf("invalid day %q in %q", part, s)
		}
		sel.Days = append(sel.Days, day)
	}
	return sel, nil
}

// SelectorOrNone parses s and degrades any malformed selector to "no filter".
func SelectorOrNone(s string) DateSelector {
	sel, err := ParseDateSelector(s)
	if err != nil {
		return DateSelector{}
	}
	return sel
}

// FormatDateSelector builds the string form used by the time grid:
// "Jan" for a whole month, "Jan 1,2,3" for selected days.
func FormatDateSelector(month string, days ...int) string {
	if len(days) == 0 {
		return month
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return month + " " + strings.Join(parts, ",")
}
