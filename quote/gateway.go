// Package quote fetches current and historical prices from an external
// provider, one symbol at a time, under a minimum-interval rate limit.
package quote

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/halfpie/pietree"
	"github.com/halfpie/pietree/date"
)

// ErrUnauthorized is returned when the upstream provider rejects the
// request (HTTP 401/403). It is distinguished from ErrNoSeries so callers
// can report the correct error class.
var ErrUnauthorized = errors.New("quote: unauthorized by provider")

// ErrNoSeries is returned when the provider answers but has no data for
// the symbol.
var ErrNoSeries = errors.New("quote: no data for symbol")

// Provider is the upstream quote source. Implementations must return
// ErrUnauthorized and ErrNoSeries (possibly wrapped) for the corresponding
// failure classes.
type Provider interface {
	// CurrentPrice returns the latest quote for a symbol.
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	// DailyCloses returns the daily close series for a symbol over an
	// inclusive date range. Non-trading days are simply absent.
	DailyCloses(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error)
}

// Gateway performs sequential per-symbol fetches against a provider,
// spacing requests by a minimum interval for rate-limit compliance.
// Each symbol's result is independently success or failure; the gateway
// collects everything and returns once (atomic, no partial visibility).
// It never touches the document: callers enumerate symbols before the
// fetch and write prices back after it.
type Gateway struct {
	provider Provider
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewGateway wraps a provider. minInterval is the enforced delay between
// consecutive requests; zero disables the spacing (useful in tests).
func NewGateway(p Provider, minInterval time.Duration, log zerolog.Logger) *Gateway {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Gateway{
		provider: p,
		limiter:  rate.NewLimiter(limit, 1),
		log:      log,
	}
}

// CurrentPrices fetches the latest quote for each symbol in order. Failed
// symbols are aggregated, not fatal. The only returned error is the
// context's, checked between fetches so an abort does not wait for the
// remaining symbols.
func (g *Gateway) CurrentPrices(ctx context.Context, symbols []string) (map[string]float64, []pietree.SymbolError, error) {
	prices := make(map[string]float64, len(symbols))
	var failed []pietree.SymbolError
	for _, symbol := range symbols {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
		price, err := g.provider.CurrentPrice(ctx, symbol)
		if err != nil {
			g.log.Warn().Str("symbol", symbol).Err(err).Msg("quote fetch failed")
			failed = append(failed, pietree.SymbolError{Symbol: symbol, Err: err})
			continue
		}
		g.log.Debug().Str("symbol", symbol).Float64("price", price).Msg("quote fetched")
		prices[symbol] = price
	}
	return prices, failed, nil
}

// History fetches daily closes for each symbol in order over the given
// range and assembles them into a MarketHistory. Per-symbol failures are
// recorded on the result; only a context cancellation aborts the loop.
func (g *Gateway) History(ctx context.Context, symbols []string, r date.Range) (*pietree.MarketHistory, error) {
	market := pietree.NewMarketHistory()
	for _, symbol := range symbols {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		closes, err := g.provider.DailyCloses(ctx, symbol, r)
		if err != nil {
			g.log.Warn().Str("symbol", symbol).Err(err).Msg("history fetch failed")
			market.Fail(symbol, err)
			continue
		}
		g.log.Debug().Str("symbol", symbol).Int("observations", closes.Len()).Msg("history fetched")
		market.Add(symbol, closes)
	}
	return market, nil
}
