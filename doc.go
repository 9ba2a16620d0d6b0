// Package gridfit provides a small toolkit for exploratory model analysis
// in Go: declarative preprocessing recipes, gradient boosted trees, a
// feed-forward classifier, cross-validated grid search, and console/plot
// reporting, built on gonum.
//
// The workflow mirrors the recipe/model/tune pattern: describe the
// preprocessing as a recipe, pick a model, sweep its hyperparameters over a
// grid with cross-validation, then evaluate the winner on a held-out split.
//
// # Quick Start
//
// Cross-validated grid search for a boosted-tree regressor:
//
//	tbl := dataset.Housing()
//	train, test, err := tune.TrainTestSplit(tbl, 0.25, tune.StratifyQuartiles, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec := recipe.New(recipe.Normalize())
//	trainX, err := rec.PrepBake(train.X)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	search := &tune.Search{
//	    Grid: tune.NewGrid().
//	        Add("learning_rate", 0.05, 0.1, 0.2).
//	        Add("max_depth", 3, 4, 6),
//	    New: func(c tune.Candidate) tune.Estimator {
//	        return boost.NewRegressor(boost.Params{
//	            LearningRate: c["learning_rate"],
//	            MaxDepth:     int(c["max_depth"]),
//	        })
//	    },
//	    Splitter: tune.NewKFold(5, true, 42),
//	    Metric:   tune.MetricRMSE,
//	}
//	results, err := search.Run(context.Background(), trainX, train.Y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(results.Best().Candidate)
//
// # Packages
//
//   - dataset: built-in deterministic datasets (housing, two moons)
//   - recipe: declarative preprocessing (standardize, rescale to range)
//   - boost: second-order gradient boosted trees (regression, classification)
//   - neural: one-hidden-layer feed-forward classifier
//   - tune: train/test splits, cross-validation, parallel grid search
//   - metrics: regression and classification metrics
//   - report: console tables for search results and metrics
//   - visual: PNG plots (fit diagnostics, decision boundary, ROC)
//   - core/model, core/parallel: shared estimator state and helpers
//
// The housing and moons commands under cmd/ tie the packages together into
// two end-to-end analysis runs.
package gridfit
