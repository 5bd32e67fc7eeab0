// Command evaluator runs downstream evaluation sessions of hashtron
// classifiers from YAML session configs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neurlang/evaluator/config"
	"github.com/neurlang/evaluator/models"
	"github.com/neurlang/evaluator/trainers"
)

var (
	configPath string
	debug      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "evaluator",
	Short: "Downstream evaluation sessions for hashtron classifiers",
	Long: `evaluator fits and evaluates hashtron classifier models against a task
dataset, repeating the run as many times as configured and aggregating the
validation and test metrics across runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an evaluation session from a config",
	Long: `Runs the configured amount of independent fit and evaluate runs on
fresh clones of the model, records every run's validation and test metrics
and saves the aggregated session results below the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		dm, err := cfg.Data.DataModule()
		if err != nil {
			return err
		}
		model, err := models.NewHashtronClassifier(cfg.Model.Bits)
		if err != nil {
			return err
		}
		trainer := cfg.NewTrainer()
		trainer.SetLogger(logger)

		logger.Info("starting evaluation session",
			zap.String("dataset", cfg.Data.Dataset),
			zap.Int("n_runs", cfg.Session.NRuns),
			zap.String("output_dir", trainer.DefaultLogDir()))
		return trainers.RunEvaluationSession(trainer, model, dm, cfg.Session.NRuns, cfg.Session.Verbose)
	},
}

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Run model inference over the configured dataset",
	Long: `Loads the configured model weights and predicts the whole dataset,
printing one prediction per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.Model.Weights == "" {
			return errors.New("infer needs model.weights in the config")
		}

		model, err := models.NewHashtronClassifier(cfg.Model.Bits)
		if err != nil {
			return err
		}
		if err := model.ReadZlibWeightsFromFile(cfg.Model.Weights); err != nil {
			return err
		}

		samples, err := cfg.Data.Samples()
		if err != nil {
			return err
		}
		dm, err := cfg.Data.DataModule()
		if err != nil {
			return err
		}
		dm.Predict = samples

		trainer := cfg.NewTrainer()
		trainer.SetLogger(logger)

		predictions, err := trainers.InferModel(trainer, model, dm, true)
		if err != nil {
			return err
		}
		for i, p := range predictions {
			fmt.Printf("%d\t%d\n", samples[i].Feature(0), p)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/isalnum.yaml", "session config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inferCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
