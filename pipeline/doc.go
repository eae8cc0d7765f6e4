// Package pipeline provides composable, pull-based data pipeline operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand and
// everything runs on the caller's goroutine.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Tap: side-effect without altering the value (printing, counting)
//   - MergeSorted: interleave two pipelines by an ordering, one item of
//     lookahead per side
//   - MergeSortedAll: fold any number of pipelines into one with repeated
//     MergeSorted, last source innermost
//
// # Usage
//
//	a := pipeline.FromSlice([]int{1, 3, 5})
//	b := pipeline.FromSlice([]int{2, 4, 6})
//	merged := pipeline.MergeSorted(a, b, func(x, y int) bool { return x < y })
//	evens := pipeline.Filter(merged, func(n int) bool { return n%2 == 0 })
//	results, _ := pipeline.Collect(ctx, evens) // [2 4 6]
//
// Draining into a sink:
//
//	err := pipeline.Drain(merged, func(ctx context.Context, n int) error {
//	    return out.WriteLine(ctx, strconv.Itoa(n))
//	}).Run(ctx)
package pipeline
