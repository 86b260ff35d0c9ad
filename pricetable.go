package pietree

import (
	"slices"

	"github.com/halfpie/pietree/date"
)

// MarketHistory is the outcome of one historical price sync: a per-symbol
// table of daily closes, possibly missing days per symbol, plus the symbols
// whose fetch failed outright. Price points are immutable once fetched.
type MarketHistory struct {
	closes map[string]*date.History[float64]
	failed []SymbolError
}

// NewMarketHistory returns an empty collection.
func NewMarketHistory() *MarketHistory {
	return &MarketHistory{closes: make(map[string]*date.History[float64])}
}

// Add records a symbol's close series.
func (m *MarketHistory) Add(symbol string, closes *date.History[float64]) {
	m.closes[normalizeSymbol(symbol)] = closes
}

// Fail records a symbol whose fetch failed. The symbol then simply
// contributes no observations.
func (m *MarketHistory) Fail(symbol string, err error) {
	m.failed = append(m.failed, SymbolError{Symbol: normalizeSymbol(symbol), Err: err})
}

// Closes returns the close series for a symbol, or nil when the symbol has
// no data (never fetched, or failed).
func (m *MarketHistory) Closes(symbol string) *date.History[float64] {
	return m.closes[normalizeSymbol(symbol)]
}

// Failed lists the per-symbol fetch failures collected during the sync.
func (m *MarketHistory) Failed() []SymbolError { return m.failed }

// PriceAsOf returns the last observed close for a symbol on or before a
// date: the forward-fill lookup. A symbol with no observation yet returns
// false; it contributes zero value, never an error.
func (m *MarketHistory) PriceAsOf(symbol string, on date.Date) (float64, bool) {
	h, ok := m.closes[normalizeSymbol(symbol)]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// Dates returns the sorted union of observation dates across the given
// symbols. This is the reconstruction's date axis: only days with at least
// one observation, never a synthetic calendar.
func (m *MarketHistory) Dates(symbols []string) []date.Date {
	seen := make(map[date.Date]struct{})
	var dates []date.Date
	for _, symbol := range symbols {
		h, ok := m.closes[normalizeSymbol(symbol)]
		if !ok {
			continue
		}
		for on := range h.Days() {
			if _, dup := seen[on]; dup {
				continue
			}
			seen[on] = struct{}{}
			dates = append(dates, on)
		}
	}
	slices.SortFunc(dates, date.Date.Compare)
	return dates
}
