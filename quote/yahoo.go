package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/halfpie/pietree/date"
)

// Yahoo serves quotes from the Yahoo Finance v8 chart API. No API key is
// required, but the endpoint occasionally answers 401/403 for unblessed
// user agents, which maps to ErrUnauthorized.
type Yahoo struct {
	client *http.Client
	base   string
}

// NewYahoo returns a provider with a sane request timeout.
func NewYahoo() *Yahoo {
	return &Yahoo{
		client: &http.Client{Timeout: 10 * time.Second},
		base:   "https://query2.finance.yahoo.com",
	}
}

// CurrentPrice implements Provider using the one-day chart metadata.
func (y *Yahoo) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", y.base, url.PathEscape(symbol))
	jobj, err := y.get(ctx, addr)
	if err != nil {
		return 0, err
	}
	jval, err := jsonpath.Get("$.chart.result[0].meta.regularMarketPrice", jobj)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoSeries, symbol)
	}
	price, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s has no market price", ErrNoSeries, symbol)
	}
	return price, nil
}

// DailyCloses implements Provider using the chart timestamp/close arrays.
func (y *Yahoo) DailyCloses(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		y.base, url.PathEscape(symbol), r.From.Unix(), r.To.Add(1).Unix())
	jobj, err := y.get(ctx, addr)
	if err != nil {
		return nil, err
	}

	stamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSeries, symbol)
	}
	values, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSeries, symbol)
	}

	jstamps, _ := stamps.([]any)
	jvalues, _ := values.([]any)
	if len(jstamps) == 0 || len(jstamps) != len(jvalues) {
		return nil, fmt.Errorf("%w: %s returned an empty or inconsistent series", ErrNoSeries, symbol)
	}

	closes := &date.History[float64]{}
	for i, jstamp := range jstamps {
		ts, ok := jstamp.(float64)
		if !ok {
			continue
		}
		// Null closes happen on half-days, skip them.
		price, ok := jvalues[i].(float64)
		if !ok {
			continue
		}
		closes.Append(date.FromTime(time.Unix(int64(ts), 0)), price)
	}
	if closes.Len() == 0 {
		return nil, fmt.Errorf("%w: %s returned only null closes", ErrNoSeries, symbol)
	}
	return closes, nil
}

// get performs the request and decodes the JSON payload into a generic
// object for jsonpath extraction.
func (y *Yahoo) get(ctx context.Context, addr string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pietree/1.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNoSeries, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}
