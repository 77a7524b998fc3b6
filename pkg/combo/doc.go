// Package combo indexes the filtered Cartesian product of independent
// per-slot choice ranges.
//
// Given per-slot counts [c0, c1, ..., ck-1], the raw product is ordered
// lexicographically with slot 0 most significant:
//
//	counts [3, 4] → [0 0] [0 1] [0 2] [0 3] [1 0] ... [2 3]
//
// A [SkipFunc] removes combinations from that sequence and the survivors are
// numbered 0, 1, 2, ... An [Indexer] maps such a number back to its
// combination.
//
// # Lazy Enumeration
//
// Products grow as the product of all counts, so an Indexer never
// materializes them. It walks the product with an explicit odometer (a cursor
// per slot plus carry) and stops as soon as the requested survivor has been
// reached. Survivors are remembered as raw product positions, which keeps the
// memo at one int64 per accepted combination regardless of slot count.
// Sequential access Get(i), Get(i+1), ... is amortized O(1) per step.
//
// # Memoization
//
// A [Cache] keeps one Indexer per shape (the counts vector). The cache is
// insert-once and never evicts, so work done for one request is reused by every
// later request of the same shape. [DefaultCache] is the process-wide
// instance; tests construct their own with [NewCache].
//
// The cache is keyed by shape only. Callers sharing a cache must use a single
// skip predicate per shape, which holds for the pattern planner because its
// predicate depends only on the slot count.
//
// # Reference Enumeration
//
// [Nth] enumerates from scratch without any memo. It exists to cross-check
// the memoized indexer and for one-off lookups where keeping state is
// unwanted.
package combo
