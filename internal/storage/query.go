package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/caixa-app/caixa/internal/model"
)

// sortableDateExpr reconstructs the stored DD/MM/YYYY text as YYYYMMDD in
// SQL, so lexical comparison becomes chronological comparison.
const sortableDateExpr = "(substr(date,7,4)||substr(date,4,2)||substr(date,1,2))"

// buildWhere translates the active filters of c into a WHERE clause. All
// active filters are ANDed; inactive ones contribute nothing.
//
// A custom range with a missing or malformed bound is skipped entirely: the
// filter fails open to "all dates" rather than failing the query.
func buildWhere(c model.Criteria, now time.Time) (string, []any) {
	conds := []string{"1=1"}
	var args []any

	if c.Search != "" {
		conds = append(conds, "LOWER(description) LIKE ?")
		args = append(args, "%"+strings.ToLower(c.Search)+"%")
	}

	if c.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, c.Category)
	}

	switch c.EffectiveRange() {
	case model.RangeCurrentMonth:
		conds = append(conds, "date LIKE ?")
		args = append(args, "%"+model.MonthSuffix(now.Year(), now.Month()))
	case model.RangePreviousMonth:
		year, month := model.PreviousMonth(now.Year(), now.Month())
		conds = append(conds, "date LIKE ?")
		args = append(args, "%"+model.MonthSuffix(year, month))
	case model.RangeCustom:
		start := model.SortableDate(c.Start)
		end := model.SortableDate(c.End)
		if start != "" && end != "" {
			conds = append(conds, sortableDateExpr+" BETWEEN ? AND ?")
			args = append(args, start, end)
		}
	case model.RangeAll:
	}

	return strings.Join(conds, " AND "), args
}

// orderBy translates the sort key into an ORDER BY expression. Dates are
// stored as day/month/year text, so chronological order is composed from
// the year, month and day components; a naive sort on the raw text would
// misorder across months and years.
func orderBy(key model.SortKey) string {
	switch key {
	case model.SortAmountDesc:
		return "amount DESC"
	case model.SortAmountAsc:
		return "amount ASC"
	case model.SortDateAsc:
		return "substr(date,7,4) ASC, substr(date,4,2) ASC, substr(date,1,2) ASC"
	case model.SortDateDesc:
		fallthrough
	default:
		return "substr(date,7,4) DESC, substr(date,4,2) DESC, substr(date,1,2) DESC"
	}
}

// buildListQuery produces the full parameterized SELECT for c.
func buildListQuery(c model.Criteria, now time.Time) (string, []any) {
	where, args := buildWhere(c, now)
	query := fmt.Sprintf(
		"SELECT id, kind, description, amount, category, date FROM transactions WHERE %s ORDER BY %s",
		where, orderBy(c.EffectiveSort()))
	return query, args
}

// buildSummaryQuery produces the aggregate SELECT over the same filtered
// set as buildListQuery: income and expense sums are computed for exactly
// the rows the list query returns, never the whole table.
func buildSummaryQuery(c model.Criteria, now time.Time) (string, []any) {
	where, args := buildWhere(c, now)
	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(CASE WHEN kind = ? THEN amount END), 0),
		COALESCE(SUM(CASE WHEN kind = ? THEN amount END), 0)
		FROM transactions WHERE %s`, where)
	return query, append([]any{string(model.KindIncome), string(model.KindExpense)}, args...)
}
