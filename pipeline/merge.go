package pipeline

import (
	"context"
	"errors"
)

// ErrNoSources is returned by MergeSortedAll when it is given nothing to fold.
var ErrNoSources = errors.New("pipeline: merge needs at least one source")

// Before reports whether a should be emitted ahead of b when both are
// available. When it returns false the right-hand item is emitted, so ties
// and incomparable pairs go to the right source.
type Before[T any] func(a, b T) bool

// MergeSorted lazily merges two pipelines into one. Each side's own order is
// preserved; which side goes next is decided by before. The result is sorted
// only when both inputs are already sorted under before.
func MergeSorted[T any](left, right *Pipeline[T], before Before[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return NewMergeIterator(left.create(ctx), right.create(ctx), before)
		},
	}
}

// MergeSortedAll folds sources into a single pipeline by repeated pairwise
// MergeSorted. The sources are used as a stack: the last one is the base
// accumulator and each earlier source, from back to front, is merged on the
// left of the running result:
//
//	MergeSortedAll(before, a, b, c) == MergeSorted(a, MergeSorted(b, c, before), before)
//
// The fold order decides which source wins ties, so callers that need a
// specific tie order must list their sources accordingly.
func MergeSortedAll[T any](before Before[T], sources ...*Pipeline[T]) (*Pipeline[T], error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	stack := make([]*Pipeline[T], len(sources))
	copy(stack, sources)

	acc := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		acc = MergeSorted(next, acc, before)
	}
	return acc, nil
}

// mergeState tracks which one-slot buffers hold an item. The low two bits
// are the left and right slots; exhausted is terminal.
type mergeState uint8

const (
	stateEmpty     mergeState = 0
	stateLeft      mergeState = 1 << 0
	stateRight     mergeState = 1 << 1
	stateBoth                 = stateLeft | stateRight
	stateExhausted mergeState = 1 << 2
)

func (s mergeState) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateLeft:
		return "left"
	case stateRight:
		return "right"
	case stateBoth:
		return "both"
	case stateExhausted:
		return "exhausted"
	default:
		return "invalid"
	}
}

// MergeIterator is the iterator behind MergeSorted. It holds at most one
// pending item per side and pulls from a side only when that side's slot is
// empty.
type MergeIterator[T any] struct {
	left, right Iterator[T]
	before      Before[T]

	pendingLeft  T
	pendingRight T
	state        mergeState

	// set once a side reports exhaustion so it is never pulled again
	leftDone  bool
	rightDone bool
}

// NewMergeIterator merges left and right under before. It takes ownership of
// both iterators; Close closes them.
func NewMergeIterator[T any](left, right Iterator[T], before Before[T]) *MergeIterator[T] {
	return &MergeIterator[T]{left: left, right: right, before: before}
}

// Next returns the next merged item. After the merge is exhausted, or after
// an upstream error, every call returns (zero, false, nil).
func (it *MergeIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.state == stateExhausted {
		return zero, false, nil
	}
	if err := it.fill(ctx); err != nil {
		it.pendingLeft, it.pendingRight = zero, zero
		it.state = stateExhausted
		return zero, false, err
	}

	switch it.state {
	case stateBoth:
		if it.before(it.pendingLeft, it.pendingRight) {
			return it.takeLeft(), true, nil
		}
		return it.takeRight(), true, nil
	case stateLeft:
		return it.takeLeft(), true, nil
	case stateRight:
		return it.takeRight(), true, nil
	default:
		it.state = stateExhausted
		return zero, false, nil
	}
}

// fill tops up whichever slots are empty, left first.
func (it *MergeIterator[T]) fill(ctx context.Context) error {
	if it.state&stateLeft == 0 && !it.leftDone {
		val, ok, err := it.left.Next(ctx)
		if err != nil {
			return err
		}
		if ok {
			it.pendingLeft = val
			it.state |= stateLeft
		} else {
			it.leftDone = true
		}
	}
	if it.state&stateRight == 0 && !it.rightDone {
		val, ok, err := it.right.Next(ctx)
		if err != nil {
			return err
		}
		if ok {
			it.pendingRight = val
			it.state |= stateRight
		} else {
			it.rightDone = true
		}
	}
	return nil
}

func (it *MergeIterator[T]) takeLeft() T {
	var zero T
	val := it.pendingLeft
	it.pendingLeft = zero
	it.state &^= stateLeft
	return val
}

func (it *MergeIterator[T]) takeRight() T {
	var zero T
	val := it.pendingRight
	it.pendingRight = zero
	it.state &^= stateRight
	return val
}

// Close closes both sources and returns the first error.
func (it *MergeIterator[T]) Close() error {
	lerr := it.left.Close()
	rerr := it.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
