package model

// DateRange selects which date constraint a query applies.
type DateRange string

const (
	// RangeAll applies no date constraint.
	RangeAll DateRange = "all"
	// RangeCurrentMonth matches dates in the current calendar month.
	RangeCurrentMonth DateRange = "current-month"
	// RangePreviousMonth matches dates in the month before the current one,
	// with year rollover at January.
	RangePreviousMonth DateRange = "previous-month"
	// RangeCustom matches dates within an inclusive [Start, End] window.
	RangeCustom DateRange = "custom"
)

// SortKey selects the ordering of query results. Exactly one is active.
type SortKey string

const (
	// SortDateDesc orders newest first.
	SortDateDesc SortKey = "date-desc"
	// SortDateAsc orders oldest first.
	SortDateAsc SortKey = "date-asc"
	// SortAmountDesc orders largest amount first.
	SortAmountDesc SortKey = "amount-desc"
	// SortAmountAsc orders smallest amount first.
	SortAmountAsc SortKey = "amount-asc"
)

// Criteria is the combined filter and sort selection for a transaction
// query. It is ephemeral view state, never persisted. The zero value means
// "everything, newest first".
type Criteria struct {
	// Search is a case-insensitive substring matched against descriptions.
	// Empty disables the text filter.
	Search string
	// Category filters on exact category name. Empty means all categories.
	Category string
	// Range selects the date constraint mode.
	Range DateRange
	// Start and End bound RangeCustom, in display date form. If either is
	// missing or malformed the date filter is skipped entirely.
	Start string
	End   string
	// Sort selects the result ordering; empty defaults to SortDateDesc.
	Sort SortKey
}

// EffectiveSort resolves the zero value to the default ordering.
func (c Criteria) EffectiveSort() SortKey {
	if c.Sort == "" {
		return SortDateDesc
	}
	return c.Sort
}

// EffectiveRange resolves the zero value to no date constraint.
func (c Criteria) EffectiveRange() DateRange {
	if c.Range == "" {
		return RangeAll
	}
	return c.Range
}
