// Package report renders the console tables the analysis commands print:
// grid candidates, metric summaries and confusion matrices.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/tune"
)

// GridResults prints one row per grid candidate with its cross-validated
// mean and standard deviation. The best candidate is marked.
func GridResults(w io.Writer, results *tune.Results) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	params := paramNames(results)
	header := table.Row{"#"}
	for _, p := range params {
		header = append(header, p)
	}
	header = append(header, fmt.Sprintf("mean %s", results.Metric), "std", "best")
	t.AppendHeader(header)

	for i, cand := range results.Candidates {
		row := table.Row{i + 1}
		for _, p := range params {
			row = append(row, formatValue(cand.Candidate[p]))
		}
		marker := ""
		if i == results.BestIndex {
			marker = "*"
		}
		row = append(row, fmt.Sprintf("%.4f", cand.Mean), fmt.Sprintf("%.4f", cand.Std), marker)
		t.AppendRow(row)
	}

	t.Render()
}

// BestCandidate prints the selected hyperparameters.
func BestCandidate(w io.Writer, results *tune.Results) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"parameter", "value"})

	best := results.Best()
	for _, p := range paramNames(results) {
		t.AppendRow(table.Row{p, formatValue(best.Candidate[p])})
	}
	t.AppendRow(table.Row{
		fmt.Sprintf("cv %s", results.Metric),
		fmt.Sprintf("%.4f ± %.4f", best.Mean, best.Std),
	})
	t.Render()
}

// Metrics prints metric name/value pairs in the given order.
func Metrics(w io.Writer, names []string, values []float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"metric", "value"})
	for i, name := range names {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", values[i])})
	}
	t.Render()
}

// ConfusionMatrix prints a binary confusion matrix with per-class summary
// rows.
func ConfusionMatrix(w io.Writer, cm *metrics.ConfusionMatrix) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "predicted 0", "predicted 1"})
	t.AppendRow(table.Row{"actual 0", cm.TrueNegative, cm.FalsePositive})
	t.AppendRow(table.Row{"actual 1", cm.FalseNegative, cm.TruePositive})
	t.AppendSeparator()
	t.AppendRow(table.Row{"precision", "", fmt.Sprintf("%.4f", cm.Precision())})
	t.AppendRow(table.Row{"recall", "", fmt.Sprintf("%.4f", cm.Recall())})
	t.AppendRow(table.Row{"f1", "", fmt.Sprintf("%.4f", cm.F1())})
	t.Render()
}

// paramNames returns the parameter columns in the order the grid declared
// them, falling back to sorted names for results built without that order.
func paramNames(results *tune.Results) []string {
	if len(results.Params) > 0 {
		return results.Params
	}
	if len(results.Candidates) == 0 {
		return nil
	}
	names := make([]string, 0, len(results.Candidates[0].Candidate))
	for name := range results.Candidates[0].Candidate {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
