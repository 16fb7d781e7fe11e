package paladins

import (
	"context"
	"fmt"
	"iter"
)

// Expandable is a partial object that can be upgraded into its full
// counterpart with a single request. Expanding doesn't memoize: every call
// fetches fresh data.
//
// Implemented by *PartialPlayer (expanding to *Player) and *PartialMatch
// (expanding to *Match).
type Expandable[T any] interface {
	Expand(ctx context.Context) (T, error)
}

// ExpandPartials iterates over a mixed slice, expanding the elements that
// implement Expandable[T] and passing already-full T values through
// unchanged. Elements that are neither yield an error instead.
//
// Breaking out of the loop early stops any further requests.
func ExpandPartials[T any](ctx context.Context, items []any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			// a full object may still implement Expandable[T] through an
			// embedded partial, so the concrete check has to come first
			switch v := item.(type) {
			case T:
				if !yield(v, nil) {
					return
				}
			case Expandable[T]:
				if !yield(v.Expand(ctx)) {
					return
				}
			default:
				var zero T
				if !yield(zero, fmt.Errorf("cannot expand %T into %T", item, zero)) {
					return
				}
			}
		}
	}
}
