// Package fuzzy provides pooled, parallel fuzzy matching of a live query
// against large in-memory candidate sets.
//
// It is the matching and ranking core behind interactive pickers: file
// finders spanning one or more project roots, command palettes, symbol and
// workspace switchers. Callers hand it a fresh candidate snapshot, a query,
// a result limit and a cancellation flag on every keystroke and receive a
// ranked, highlight-annotated result list back within a frame budget.
//
// # Matching
//
// MatchStrings matches a flat list of text candidates. MatchPathSets and
// MatchFixedPathSet match hierarchical paths across one or many externally
// owned candidate sets, with richer ranking (ancestor proximity, suffix
// weighted position scoring). Both shard candidates across the execution
// context's workers, scan each shard on an exclusively held scoring engine
// checked out of a MatcherPool, and truncate the merged output to the best
// k results without a full sort.
//
// A query starting with '!' negates the match: only candidates that do not
// contain the remainder are returned. Smart case makes matching case
// sensitive only when the query itself contains an uppercase letter.
//
// # Determinism
//
// Result order is fully determined by the documented comparators, down to a
// final id or lexicographic tie-break, regardless of how the scan was
// sharded. Snapshot tests can rely on byte-identical output.
//
// # Cancellation
//
// All matchers poll a caller-owned atomic flag at candidate granularity.
// A tripped flag yields an empty result, never a partial one; callers treat
// empty as "a fresher query is in flight".
package fuzzy
