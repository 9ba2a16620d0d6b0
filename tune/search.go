package tune

import (
	"context"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/pkg/errors"
	"github.com/hikaru-sato/gridfit/pkg/log"
)

// Search evaluates every grid candidate over every cross-validation fold
// and selects the best-scoring combination.
type Search struct {
	// Grid holds the candidate hyperparameter values.
	Grid *Grid

	// New builds a fresh estimator for a candidate. It is called once per
	// candidate per fold and must not share state between calls.
	New func(c Candidate) Estimator

	// Splitter generates the folds.
	Splitter Splitter

	// Metric names the score optimized, one of the Metric constants.
	Metric string

	// Workers bounds the number of concurrent fit tasks. 0 means one per
	// CPU core.
	Workers int
}

// CandidateResult is the cross-validated outcome for one candidate.
type CandidateResult struct {
	Candidate Candidate
	Scores    []float64
	Mean      float64
	Std       float64
}

// Results holds the outcome of a grid search. Params preserves the order
// the grid's parameters were declared in.
type Results struct {
	Metric     string
	Params     []string
	Candidates []CandidateResult
	BestIndex  int
}

// Best returns the best candidate's result.
func (r *Results) Best() CandidateResult {
	return r.Candidates[r.BestIndex]
}

// Run executes the search. Candidate×fold tasks run on a bounded worker
// pool; a panic inside a model is converted into an error and cancels the
// remaining tasks.
func (s *Search) Run(ctx context.Context, X, y mat.Matrix) (*Results, error) {
	if s.Grid == nil || s.Grid.Size() == 0 {
		return nil, errors.NewValueError("tune.Search.Run", "empty grid")
	}
	if s.New == nil {
		return nil, errors.NewValueError("tune.Search.Run", "no estimator factory")
	}
	if s.Splitter == nil {
		return nil, errors.NewValueError("tune.Search.Run", "no splitter")
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	candidates := s.Grid.Candidates()
	folds := s.Splitter.Split(X, y)

	// More folds than rows (or than the smallest class, for stratified
	// splitters) leaves folds with no validation rows.
	for _, fold := range folds {
		if len(fold.TestIndices) == 0 || len(fold.TrainIndices) == 0 {
			return nil, errors.NewValueError("tune.Search.Run",
				"a fold has no rows; reduce the fold count below the number of rows per class")
		}
	}

	logger := log.GetLoggerWithName("tune.search").With(
		log.MetricKey, s.Metric,
		log.CandidatesKey, len(candidates),
		log.FoldsKey, len(folds),
		log.WorkersKey, workers,
	)
	logger.Info("starting grid search")
	started := time.Now()

	// Pre-split fold data once; every candidate shares it.
	type foldData struct {
		trainX, trainY *mat.Dense
		testX, testY   *mat.Dense
	}
	prepared := make([]foldData, len(folds))
	for f, fold := range folds {
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		testX, testY := extractSubset(X, y, fold.TestIndices)
		prepared[f] = foldData{trainX: trainX, trainY: trainY, testX: testX, testY: testY}
	}

	scores := make([][]float64, len(candidates))
	for ci := range scores {
		scores[ci] = make([]float64, len(folds))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for ci := range candidates {
		for fi := range prepared {
			ci, fi := ci, fi
			g.Go(func() (err error) {
				defer errors.Recover(&err, "tune.Search.Run")

				if err := ctx.Err(); err != nil {
					return err
				}

				fd := prepared[fi]
				est := s.New(candidates[ci])
				if err := est.Fit(fd.trainX, fd.trainY); err != nil {
					return errors.Wrapf(err, "candidate %d fold %d", ci, fi)
				}

				score, err := scoreEstimator(est, s.Metric, fd.testX, fd.testY)
				if err != nil {
					return errors.Wrapf(err, "candidate %d fold %d", ci, fi)
				}
				scores[ci][fi] = score
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := &Results{
		Metric:     s.Metric,
		Params:     s.Grid.Names(),
		Candidates: make([]CandidateResult, len(candidates)),
	}
	for ci, cand := range candidates {
		mean, std := meanStd(scores[ci])
		results.Candidates[ci] = CandidateResult{
			Candidate: cand,
			Scores:    scores[ci],
			Mean:      mean,
			Std:       std,
		}
	}

	results.BestIndex = 0
	for ci := 1; ci < len(results.Candidates); ci++ {
		mean := results.Candidates[ci].Mean
		best := results.Candidates[results.BestIndex].Mean
		if IsLossMetric(s.Metric) {
			if mean < best {
				results.BestIndex = ci
			}
		} else if mean > best {
			results.BestIndex = ci
		}
	}

	logger.Info("grid search finished",
		log.DurationMsKey, time.Since(started).Milliseconds(),
		log.ScoreKey, results.Best().Mean,
	)
	return results, nil
}

func meanStd(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	if len(scores) < 2 {
		return mean, 0
	}
	var sumSq float64
	for _, s := range scores {
		d := s - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / float64(len(scores)-1))
}
