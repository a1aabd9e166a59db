package consensus

import "github.com/izouxv/goShamir/bigint"

// Tally counts candidate secrets by exact value and remembers the order in
// which each value was first seen.
type Tally struct {
	order  []bigint.Int
	counts map[bigint.Int]int
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[bigint.Int]int)}
}

// Add records one vote for v.
func (t *Tally) Add(v bigint.Int) {
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

// Count returns the votes recorded for v.
func (t *Tally) Count(v bigint.Int) int {
	return t.counts[v]
}

// Len returns the number of distinct values.
func (t *Tally) Len() int {
	return len(t.order)
}

// Values returns the distinct values in first-seen order.
func (t *Tally) Values() []bigint.Int {
	return append([]bigint.Int(nil), t.order...)
}

// Leader returns the value with the most votes. When several values share
// the highest count the one seen first wins and tied is set.
func (t *Tally) Leader() (value bigint.Int, votes int, tied bool) {
	for _, v := range t.order {
		switch c := t.counts[v]; {
		case c > votes:
			value, votes, tied = v, c, false
		case c == votes:
			tied = true
		}
	}
	return value, votes, tied
}
