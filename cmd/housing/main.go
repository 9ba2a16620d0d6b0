// Command housing fits gradient boosted trees to the built-in housing
// dataset. It splits the data with quartile stratification on the target,
// standardizes the predictors, grid-searches the booster hyperparameters
// with cross-validation, reports the search and hold-out metrics as console
// tables, and writes the fit diagnostics as plots.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/hikaru-sato/gridfit/boost"
	"github.com/hikaru-sato/gridfit/dataset"
	"github.com/hikaru-sato/gridfit/metrics"
	"github.com/hikaru-sato/gridfit/pkg/config"
	"github.com/hikaru-sato/gridfit/pkg/errors"
	"github.com/hikaru-sato/gridfit/pkg/log"
	"github.com/hikaru-sato/gridfit/recipe"
	"github.com/hikaru-sato/gridfit/report"
	"github.com/hikaru-sato/gridfit/tune"
	"github.com/hikaru-sato/gridfit/visual"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "housing",
		Short: "Tune and evaluate a boosted-tree regressor on the housing data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log.SetupConsole(log.ParseLevel(cfg.LogLevel))
			return run(cmd, cfg)
		},
		SilenceUsage: true,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	logger := log.GetLoggerWithName("housing")
	seed := int(cfg.Seed)

	tbl := dataset.Housing()
	rows, cols := tbl.Dims()
	logger.Info("loaded dataset", log.SamplesKey, rows, log.FeaturesKey, cols)

	train, test, err := tune.TrainTestSplit(tbl, cfg.TestFrac, tune.StratifyQuartiles, seed)
	if err != nil {
		return err
	}
	trainRows, _ := train.Dims()
	testRows, _ := test.Dims()
	logger.Info("split data", "train_rows", trainRows, "test_rows", testRows)

	rec := recipe.New(recipe.Normalize())
	trainX, err := rec.PrepBake(train.X)
	if err != nil {
		return err
	}
	testX, err := rec.Bake(test.X)
	if err != nil {
		return err
	}

	grid := tune.NewGrid().
		Add("learning_rate", 0.05, 0.1, 0.2).
		Add("max_depth", 3, 4, 6).
		Add("rounds", 100, 200)

	search := &tune.Search{
		Grid: grid,
		New: func(c tune.Candidate) tune.Estimator {
			return boost.NewRegressor(boostParams(c, seed))
		},
		Splitter: tune.NewKFold(cfg.Folds, true, seed),
		Metric:   tune.MetricRMSE,
		Workers:  cfg.Workers,
	}
	results, err := search.Run(cmd.Context(), trainX, train.Y)
	if err != nil {
		return err
	}

	report.GridResults(cmd.OutOrStdout(), results)
	report.BestCandidate(cmd.OutOrStdout(), results)

	best := results.Best().Candidate
	model := boost.NewRegressor(boostParams(best, seed))
	if err := model.Fit(trainX, train.Y); err != nil {
		return err
	}
	pred, err := model.Predict(testX)
	if err != nil {
		return err
	}
	predVec, err := metrics.ColVec(pred)
	if err != nil {
		return err
	}
	obsVec := test.TargetVec()

	rmse, err := metrics.RMSE(obsVec, predVec)
	if err != nil {
		return err
	}
	mae, err := metrics.MAE(obsVec, predVec)
	if err != nil {
		return err
	}
	r2, err := metrics.R2(obsVec, predVec)
	if err != nil {
		return err
	}
	report.Metrics(cmd.OutOrStdout(),
		[]string{tune.MetricRMSE, tune.MetricMAE, tune.MetricR2},
		[]float64{rmse, mae, r2})
	logger.Info("hold-out evaluation done",
		log.MetricKey, tune.MetricRMSE, log.ScoreKey, rmse)

	if cfg.NoPlots {
		return nil
	}
	return writePlots(cfg.OutDir, obsVec, predVec, logger)
}

// boostParams maps grid candidate values onto booster parameters. Values
// the grid does not sweep stay at their defaults.
func boostParams(c tune.Candidate, seed int) boost.Params {
	return boost.Params{
		NumRounds:    int(c["rounds"]),
		LearningRate: c["learning_rate"],
		MaxDepth:     int(c["max_depth"]),
		Seed:         seed,
	}
}

func writePlots(outDir string, observed, predicted *mat.VecDense, logger log.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", outDir)
	}

	obs := make([]float64, observed.Len())
	pred := make([]float64, predicted.Len())
	for i := range obs {
		obs[i] = observed.AtVec(i)
		pred[i] = predicted.AtVec(i)
	}

	fitPath := filepath.Join(outDir, "housing_fit.png")
	if err := visual.ObservedVsPredicted(obs, pred, fitPath); err != nil {
		return err
	}
	residPath := filepath.Join(outDir, "housing_residuals.png")
	if err := visual.ResidualHistogram(obs, pred, residPath); err != nil {
		return err
	}
	logger.Info("wrote plots", "fit", fitPath, "residuals", residPath)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
