package renderer

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/halfpie/pietree"
)

// HistoryMarkdown renders a reconstruction: the portfolio ROI series, one
// table per benchmark on its own date axis, and the failed symbols.
func HistoryMarkdown(r *pietree.Reconstruction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio history")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Invested", "ROI"},
		Rows:   [][]string{},
	}
	for i, v := range r.Valuations {
		table.Rows = append(table.Rows, []string{
			v.Date.String(),
			Cash(v.Value),
			Cash(v.Invested),
			r.Series[i].ROI.SignedString(),
		})
	}
	doc.Table(table)

	symbols := make([]string, 0, len(r.Benchmarks))
	for symbol := range r.Benchmarks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		series := r.Benchmarks[symbol]
		doc.H2(fmt.Sprintf("Benchmark %s", symbol))
		bench := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Date", "Change"},
			Rows:      [][]string{},
		}
		for _, pt := range series {
			bench.Rows = append(bench.Rows, []string{pt.Date.String(), pt.ROI.SignedString()})
		}
		doc.Table(bench)
	}

	if len(r.Failed) > 0 {
		doc.H2("Failed symbols")
		for _, f := range r.Failed {
			doc.PlainText(fmt.Sprintf("- %s", f))
		}
	}
	renderWarnings(doc, r.Warnings)
	return doc.String()
}
