/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/spf13/cobra"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/projection"
	"d7y.io/explorer/explorer/training"
)

type evaluateOptions struct {
	dataset     string
	classifier  string
	c           float64
	k           int
	maxDepth    int
	nEstimators int

	// Outputs.
	plot        string
	predictions string

	// Iris inference.
	sample []float64
	batch  string
}

var evaluateOpts = &evaluateOptions{}

var evaluateCmd = &cobra.Command{
	Use:               "evaluate",
	Short:             "evaluate a classifier on a dataset",
	Long:              `evaluate trains a classifier on 80% of a dataset, prints the accuracy on the rest and optionally writes the projection plot and predictions.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Dataset.Dir
		if dir == "" {
			d, err := initDfpath(&cfg.Server)
			if err != nil {
				return err
			}
			dir = d.DatasetDir()
		}

		values := make(map[string]float64)
		flags := cmd.Flags()
		if flags.Changed("c") {
			values[classifier.ParamC] = evaluateOpts.c
		}

		if flags.Changed("k") {
			values[classifier.ParamK] = float64(evaluateOpts.k)
		}

		if flags.Changed("max-depth") {
			values[classifier.ParamMaxDepth] = float64(evaluateOpts.maxDepth)
		}

		if flags.Changed("n-estimators") {
			values[classifier.ParamNEstimators] = float64(evaluateOpts.nEstimators)
		}

		return runEvaluate(cmd.OutOrStdout(), dataset.NewProvider(dir), evaluateOpts, values)
	},
}

func init() {
	flags := evaluateCmd.Flags()
	flags.StringVar(&evaluateOpts.dataset, "dataset", dataset.Iris.String(), "dataset, one of Iris, Breast Cancer and Wine")
	flags.StringVar(&evaluateOpts.classifier, "classifier", classifier.KNN.String(), "classifier, one of KNN, SVM and Random Forest")
	flags.Float64Var(&evaluateOpts.c, "c", classifier.MinC, "regularization of SVM")
	flags.IntVar(&evaluateOpts.k, "k", classifier.MinK, "neighbors of KNN")
	flags.IntVar(&evaluateOpts.maxDepth, "max-depth", classifier.MinMaxDepth, "maximum depth of Random Forest trees")
	flags.IntVar(&evaluateOpts.nEstimators, "n-estimators", classifier.MinNEstimators, "number of Random Forest trees")
	flags.StringVar(&evaluateOpts.plot, "plot", "", "write the projection plot as png to the path")
	flags.StringVar(&evaluateOpts.predictions, "predictions", "", "write the test set predictions as csv to the path")
	flags.Float64SliceVar(&evaluateOpts.sample, "sample", nil, "predict the class of one iris sample")
	flags.StringVar(&evaluateOpts.batch, "batch", "", "predict the classes of the iris samples in the csv file")
}

func runEvaluate(w io.Writer, provider dataset.Provider, opts *evaluateOptions, values map[string]float64) error {
	id, err := dataset.ParseID(opts.dataset)
	if err != nil {
		return err
	}

	kind, err := classifier.ParseKind(opts.classifier)
	if err != nil {
		return err
	}

	params, err := classifier.ParseParams(kind, values)
	if err != nil {
		return err
	}

	ds, err := provider.Load(id)
	if err != nil {
		return err
	}

	result, err := training.New().Evaluate(ds, params)
	if err != nil {
		return err
	}

	summary := ds.Summary()
	fmt.Fprintf(w, "## %s Dataset\n", summary.Name)
	fmt.Fprintf(w, "Shape of dataset: (%d, %d)\n", summary.Samples, summary.Features)
	fmt.Fprintf(w, "number of classes: %d\n", summary.Classes)
	fmt.Fprintf(w, "Classifier = %s\n", kind)
	fmt.Fprintf(w, "Accuracy = %v\n", result.Accuracy)
	if cfg.Verbose {
		fmt.Fprintln(w, evaluation.GetSummary(result.ConfusionMatrix))
	}

	if opts.plot != "" {
		if err := writeFile(opts.plot, func(f io.Writer) error {
			proj, err := projection.Project(ds.Features)
			if err != nil {
				return err
			}

			return projection.Render(f, proj, ds.Labels, ds.ClassNames, projection.WithTitle(summary.Name))
		}); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
	}

	if opts.predictions != "" {
		if err := writeFile(opts.predictions, func(f io.Writer) error {
			return training.WritePredictions(f, ds, result)
		}); err != nil {
			return fmt.Errorf("write predictions: %w", err)
		}
	}

	if len(opts.sample) > 0 {
		class, err := inference.PredictSample(result.Classifier, ds, opts.sample)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Class = %s\n", class)
	}

	if opts.batch != "" {
		f, err := os.Open(opts.batch)
		if err != nil {
			return err
		}
		defer f.Close()

		table, err := inference.PredictBatch(result.Classifier, ds, f)
		if err != nil {
			return err
		}

		if err := table.WriteCSV(w); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
