package oracle

// Budget is a remaining-budget counter checked at a single point of a
// search. A limit of zero or less means unlimited.
//
// A Budget is not safe for concurrent use; give each search its own.
type Budget struct {
	limit int64
	spent int64
}

// NewBudget returns a budget allowing limit units. limit <= 0 is unlimited.
func NewBudget(limit int64) *Budget { return &Budget{limit: limit} }

// Spend consumes one unit and reports whether the search may continue. Once
// more than limit units have been requested it returns false.
func (b *Budget) Spend() bool {
	b.spent++
	return b.limit <= 0 || b.spent <= b.limit
}

// Spent returns the number of units consumed so far.
func (b *Budget) Spent() int64 { return b.spent }

// Exhausted reports whether the limit has been exceeded.
func (b *Budget) Exhausted() bool { return b.limit > 0 && b.spent > b.limit }

// Limit returns the configured limit (<= 0 for unlimited).
func (b *Budget) Limit() int64 { return b.limit }
