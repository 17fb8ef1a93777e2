package core

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/constraints"
)

// DateIndex wraps a sorted ascending date axis and answers nearest-prior
// lookups. ISO dates compare correctly as plain strings, so the index never
// needs to parse them.
type DateIndex struct {
	dates []string
}

// NewDateIndex builds an index over an already-sorted date axis.
func NewDateIndex(dates []string) *DateIndex {
	return &DateIndex{dates: dates}
}

// Len returns the number of dates in the index.
func (ix *DateIndex) Len() int {
	return len(ix.dates)
}

// Dates returns the underlying date axis.
func (ix *DateIndex) Dates() []string {
	return ix.dates
}

// ClosestPriorIndex returns the index of the latest date <= target, or -1
// when the target predates the whole axis. An exact match returns its own
// index. O(log n).
func (ix *DateIndex) ClosestPriorIndex(target string) int {
	return SearchPrior(ix.dates, target)
}

// SearchPrior returns the index of the largest element <= target in a
// sorted slice, or -1 when every element is greater.
func SearchPrior[T constraints.Ordered](sorted []T, target T) int {
	// First element strictly greater than target; everything before it
	// is <= target.
	next := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] > target
	})
	return next - 1
}

// AddDays moves an ISO date by a signed number of calendar days.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}
