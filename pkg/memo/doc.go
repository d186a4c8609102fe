/*
Package memo provides a small, bounded, least-recently-used
memoization cache for pure string functions.

The cache is deliberately an explicit object rather than a decorator
or hidden global, so callers inject the capacity and tests can
construct fresh instances without cross-test contamination.
*/
package memo
