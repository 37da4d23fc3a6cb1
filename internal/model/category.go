package model

// FallbackCategory is assigned to records that arrive without a category,
// such as imported bank-statement entries.
const FallbackCategory = "General"

// DefaultCategories are seeded on first run so a fresh database is usable
// without any setup.
var DefaultCategories = []string{FallbackCategory, "Sales", "Operations", "Food"}

// Category is a user-defined label. The name is its identity; transactions
// reference it by name and the reference is deliberately not enforced as a
// foreign key, so deleting a category leaves any referencing transactions
// with a dangling name.
type Category struct {
	Name string
}
