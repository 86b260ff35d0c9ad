// Package pietree is a portfolio valuation engine for hierarchical
// allocations: nested pies whose leaves are tradable positions with
// lot-based, weighted-average cost accounting.
//
// The engine is pure, synchronous computation over a Document snapshot:
// recursive tree valuation, per-position ledger replay as of any date, and
// historical reconstruction of value and ROI% from a sparse daily price
// table with forward-fill. Price fetching is the only I/O and lives in the
// quote sub-package behind a rate-limited sequential gateway.
package pietree
