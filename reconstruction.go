package pietree

import (
	"github.com/halfpie/pietree/date"
)

// ROIPoint is one observation of a percent-change series.
type ROIPoint struct {
	Date date.Date `json:"date"`
	ROI  Percent   `json:"roi"`
}

// DailyValuation is the portfolio state reconstructed for one date.
type DailyValuation struct {
	Date     date.Date
	Value    Amount
	Invested Amount
}

// Reconstruction is the replayed history of the portfolio across a date
// range, plus independently normalized benchmark series sharing the same
// percent scale for charting.
type Reconstruction struct {
	Series     []ROIPoint
	Valuations []DailyValuation
	Benchmarks map[string][]ROIPoint
	Failed     []SymbolError
	Warnings   []Warning
}

// Reconstruct replays the portfolio's value, invested capital and ROI% over
// the dates observed in the market history.
//
// The date axis is the sorted union of all observation dates across the
// positions' symbols. For each date every position's ledger is replayed
// with that date as cutoff and valued at the forward-filled close; a symbol
// with no observation yet contributes zero value. ROI% guards the zero-
// invested case by reporting 0.
//
// Benchmarks are normalized independently: each series becomes percent
// change relative to its own first observation in the window, never tied to
// the portfolio's invested amount.
//
// Per-symbol fetch failures recorded in the market history are carried over
// for caller visibility. Only when positions were requested and not one of
// their symbols produced an observation does the reconstruction fail, with
// ErrNoData, so a total fetch failure is distinguishable from an empty
// portfolio.
func Reconstruct(positions []*Position, market *MarketHistory, benchmarks []string) (*Reconstruction, error) {
	r := &Reconstruction{
		Benchmarks: make(map[string][]ROIPoint),
		Failed:     market.Failed(),
	}

	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol())
	}
	dates := market.Dates(symbols)

	if len(positions) > 0 && len(dates) == 0 {
		return nil, ErrNoData
	}

	seenWarning := make(map[string]bool)
	for _, on := range dates {
		var totalValue, totalInvested Amount
		for _, p := range positions {
			h := HoldingAt(p, on)
			totalInvested = totalInvested.Add(h.CostBasis)
			if price, ok := market.PriceAsOf(p.Symbol(), on); ok {
				totalValue = totalValue.Add(A(price).Mul(h.Shares))
			}
			if !seenWarning[p.ID()] && len(h.Warnings) > 0 {
				seenWarning[p.ID()] = true
				r.Warnings = append(r.Warnings, h.Warnings...)
			}
		}

		var roi Percent
		if totalInvested.IsPositive() {
			roi = Percent(totalValue.Sub(totalInvested).Ratio(totalInvested) * 100)
		}
		r.Series = append(r.Series, ROIPoint{Date: on, ROI: roi})
		r.Valuations = append(r.Valuations, DailyValuation{Date: on, Value: totalValue, Invested: totalInvested})
	}

	for _, symbol := range benchmarks {
		if series := normalizeBenchmark(market.Closes(symbol)); series != nil {
			r.Benchmarks[normalizeSymbol(symbol)] = series
		}
	}
	return r, nil
}

// normalizeBenchmark converts a raw price series to percent change relative
// to its own first observation in the window.
func normalizeBenchmark(closes *date.History[float64]) []ROIPoint {
	if closes == nil {
		return nil
	}
	_, baseline, ok := closes.First()
	if !ok || baseline == 0 {
		return nil
	}
	var series []ROIPoint
	for on, price := range closes.Values() {
		series = append(series, ROIPoint{Date: on, ROI: Percent((price - baseline) / baseline * 100)})
	}
	return series
}
