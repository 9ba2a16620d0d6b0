package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/tune"
)

func sampleResults() *tune.Results {
	return &tune.Results{
		Metric: "rmse",
		Params: []string{"learning_rate", "max_depth"},
		Candidates: []tune.CandidateResult{
			{
				Candidate: tune.Candidate{"learning_rate": 0.1, "max_depth": 3},
				Scores:    []float64{2.1, 2.3},
				Mean:      2.2,
				Std:       0.14,
			},
			{
				Candidate: tune.Candidate{"learning_rate": 0.05, "max_depth": 5},
				Scores:    []float64{1.9, 2.0},
				Mean:      1.95,
				Std:       0.07,
			},
		},
		BestIndex: 1,
	}
}

func TestGridResults(t *testing.T) {
	var buf bytes.Buffer
	GridResults(&buf, sampleResults())

	out := buf.String()
	for _, want := range []string{"learning_rate", "max_depth", "mean rmse", "2.2000", "1.9500", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGridResultsKeepsDeclaredOrder(t *testing.T) {
	// "rounds" was declared before "learning_rate"; alphabetical order
	// would swap the columns.
	results := &tune.Results{
		Metric: "rmse",
		Params: []string{"rounds", "learning_rate"},
		Candidates: []tune.CandidateResult{
			{
				Candidate: tune.Candidate{"rounds": 100, "learning_rate": 0.1},
				Scores:    []float64{2.0},
				Mean:      2.0,
			},
		},
	}

	var buf bytes.Buffer
	GridResults(&buf, results)

	out := buf.String()
	if strings.Index(out, "rounds") > strings.Index(out, "learning_rate") {
		t.Errorf("columns not in declared order:\n%s", out)
	}
}

func TestBestCandidate(t *testing.T) {
	var buf bytes.Buffer
	BestCandidate(&buf, sampleResults())

	out := buf.String()
	for _, want := range []string{"learning_rate", "0.05", "cv rmse", "1.9500"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	Metrics(&buf, []string{"rmse", "r2"}, []float64{2.5, 0.87})

	out := buf.String()
	for _, want := range []string{"rmse", "2.5000", "r2", "0.8700"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfusionMatrixTable(t *testing.T) {
	cm := &metrics.ConfusionMatrix{
		TruePositive:  40,
		TrueNegative:  45,
		FalsePositive: 5,
		FalseNegative: 10,
	}

	var buf bytes.Buffer
	ConfusionMatrix(&buf, cm)

	out := buf.String()
	for _, want := range []string{"predicted 0", "actual 1", "precision", "recall", "f1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
