// Package view holds the ephemeral view state of the transaction list: the
// active criteria, the display limit, and the selection set.
package view

import "github.com/caixa-app/caixa/internal/model"

// DefaultLimit is the initial number of rows shown.
const DefaultLimit = 100

// State owns the current criteria, the accumulated display limit, and the
// set of selected transaction identities. Selection is an explicit set
// value here, not state scattered across per-row callbacks.
type State struct {
	selected map[int64]bool
	criteria model.Criteria
	limit    int
}

// NewState returns a fresh state: zero criteria, the default limit, and an
// empty selection.
func NewState() *State {
	return &State{
		selected: make(map[int64]bool),
		limit:    DefaultLimit,
	}
}

// Criteria returns the active criteria.
func (s *State) Criteria() model.Criteria {
	return s.criteria
}

// Limit returns the current display limit.
func (s *State) Limit() int {
	return s.limit
}

// SetCriteria replaces the active criteria. Any change to a filter or sort
// criterion resets the display limit to its initial value and clears the
// selection, since the visible rows are about to change.
func (s *State) SetCriteria(c model.Criteria) {
	if c == s.criteria {
		return
	}
	s.criteria = c
	s.limit = DefaultLimit
	s.ClearSelection()
}

// LoadMore grows the display limit by n.
func (s *State) LoadMore(n int) {
	if n > 0 {
		s.limit += n
	}
}

// Visible caps rows to the current display limit. The full slice is what
// aggregates are computed over; only the display is capped.
func (s *State) Visible(rows []model.Transaction) []model.Transaction {
	if len(rows) <= s.limit {
		return rows
	}
	return rows[:s.limit]
}

// Toggle flips the selection of one transaction.
func (s *State) Toggle(id int64) {
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	s.selected[id] = true
}

// Selected reports whether the transaction is selected.
func (s *State) Selected(id int64) bool {
	return s.selected[id]
}

// SelectAll marks every given transaction as selected.
func (s *State) SelectAll(rows []model.Transaction) {
	for _, txn := range rows {
		s.selected[txn.ID] = true
	}
}

// ClearSelection empties the selection set.
func (s *State) ClearSelection() {
	s.selected = make(map[int64]bool)
}

// SelectedIDs returns the selected identities. Order is unspecified.
func (s *State) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}
