package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/halfpie/pietree"
)

// SummaryMarkdown renders the current-state valuation: totals, the
// per-node breakdown with actual/target/drift, and any accounting warnings.
func SummaryMarkdown(s *pietree.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", s.Date))

	totals := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total value", Cash(s.TotalValue)},
			{"Cash", Cash(s.Cash)},
			{"Invested", Cash(s.TotalInvested)},
			{"Profit / loss", Cash(s.ProfitLoss)},
			{"ROI", s.ROI.SignedString()},
		},
	}
	doc.Table(totals)

	if len(s.Nodes) > 0 {
		doc.H2("Breakdown")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Name", "Value", "Actual", "Target", "Drift"},
			Rows:   [][]string{},
		}
		for _, n := range s.Nodes {
			name := n.Name
			if !n.Leaf {
				name = name + "/"
			}
			table.Rows = append(table.Rows, []string{
				indent(name, n.Depth),
				Cash(n.Value),
				n.Actual.String(),
				n.Target.String(),
				n.Drift.SignedString(),
			})
		}
		doc.Table(table)
	}

	renderWarnings(doc, s.Warnings)
	return doc.String()
}

func renderWarnings(doc *md.Markdown, warnings []pietree.Warning) {
	if len(warnings) == 0 {
		return
	}
	doc.H2("Warnings")
	for _, w := range warnings {
		doc.PlainText(fmt.Sprintf("- %s", w))
	}
}
