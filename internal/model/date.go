package model

import "time"

// DisplayDateLayout is the textual date form used everywhere a date is
// stored or shown: day/month/year.
const DisplayDateLayout = "02/01/2006"

// FormatDate renders t in the display form.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// ValidDate reports whether s is a well-formed display date.
func ValidDate(s string) bool {
	_, err := time.Parse(DisplayDateLayout, s)
	return err == nil
}

// SortableDate reconstructs a display date as YYYYMMDD so that plain string
// comparison orders dates chronologically. The empty string is returned for
// malformed input; range filters treat that as "skip the filter", never as a
// hard failure.
func SortableDate(s string) string {
	t, err := time.Parse(DisplayDateLayout, s)
	if err != nil {
		return ""
	}
	return t.Format("20060102")
}

// MonthSuffix returns the "/MM/YYYY" tail shared by every display date in
// the given month, used by the month-equality filters.
func MonthSuffix(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("/01/2006")
}

// PreviousMonth steps one month back from the given month, rolling the year
// over at January.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
