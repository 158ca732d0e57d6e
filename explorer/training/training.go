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

package training

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/sjwhitworth/golearn/evaluation"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	logger "d7y.io/explorer/internal/dflog"
)

const (
	// TestSetPercent percent of test set.
	TestSetPercent = 0.2
)

// Result is the outcome of one evaluation.
type Result struct {
	// Classifier is the classifier fitted on the training set.
	Classifier classifier.Classifier

	// Accuracy is the share of correctly predicted test samples.
	Accuracy float64

	// Predicted holds the predicted labels of the test set.
	Predicted []int

	// Actual holds the true labels of the test set.
	Actual []int

	// TestIndex holds the dataset rows of the test set.
	TestIndex []int

	TrainSize int
	TestSize  int

	// ConfusionMatrix counts predictions per actual class name.
	ConfusionMatrix evaluation.ConfusionMatrix
}

// Training is the interface used for evaluating classifiers.
type Training interface {
	// Evaluate splits the dataset, fits a classifier on the training set
	// and scores it on the test set.
	Evaluate(ds *dataset.Dataset, params classifier.Params) (*Result, error)
}

// training provides training functions.
type training struct {
	// testSize is the share of samples held out.
	testSize float64

	// seed is the seed of the split.
	seed int64
}

// Option is a functional option for configuring the training.
type Option func(t *training)

// WithTestSize sets the share of samples held out.
func WithTestSize(testSize float64) Option {
	return func(t *training) {
		t.testSize = testSize
	}
}

// WithSeed sets the seed of the split.
func WithSeed(seed int64) Option {
	return func(t *training) {
		t.seed = seed
	}
}

// New return a Training instance.
func New(options ...Option) Training {
	t := &training{
		testSize: TestSetPercent,
		seed:     classifier.RandomSeed,
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

func (t *training) Evaluate(ds *dataset.Dataset, params classifier.Params) (*Result, error) {
	log := logger.WithEvaluation(ds.ID.String(), params.Kind().String())

	trainIndex, testIndex, err := Split(ds.Rows(), t.testSize, t.seed)
	if err != nil {
		return nil, err
	}

	model, err := classifier.New(params)
	if err != nil {
		return nil, err
	}

	train, err := ds.Subset(trainIndex)
	if err != nil {
		return nil, err
	}

	test, err := ds.Subset(testIndex)
	if err != nil {
		return nil, err
	}

	if err := model.Fit(train); err != nil {
		return nil, fmt.Errorf("fit %s: %w", model, err)
	}

	out, err := model.Predict(test)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", model, err)
	}

	cm, err := evaluation.GetConfusionMatrix(test, out)
	if err != nil {
		return nil, err
	}

	predicted, err := classifier.Labels(out)
	if err != nil {
		return nil, err
	}

	actual := make([]int, len(testIndex))
	for i, row := range testIndex {
		actual[i] = ds.Labels[row]
	}

	result := &Result{
		Classifier:      model,
		Accuracy:        evaluation.GetAccuracy(cm),
		Predicted:       predicted,
		Actual:          actual,
		TestIndex:       testIndex,
		TrainSize:       len(trainIndex),
		TestSize:        len(testIndex),
		ConfusionMatrix: cm,
	}
	log.Debugf("evaluate %s with %d training samples, accuracy %f", model, result.TrainSize, result.Accuracy)

	return result, nil
}

// Prediction is one row of the evaluation report.
type Prediction struct {
	Row       int    `csv:"row"`
	Actual    string `csv:"actual"`
	Predicted string `csv:"predicted"`
	Correct   bool   `csv:"correct"`
}

// WritePredictions writes the test predictions of result as csv.
func WritePredictions(w io.Writer, ds *dataset.Dataset, result *Result) error {
	predictions := make([]*Prediction, len(result.Predicted))
	for i, label := range result.Predicted {
		predicted, err := ds.ClassName(label)
		if err != nil {
			return err
		}

		actual, err := ds.ClassName(result.Actual[i])
		if err != nil {
			return err
		}

		predictions[i] = &Prediction{
			Row:       result.TestIndex[i],
			Actual:    actual,
			Predicted: predicted,
			Correct:   label == result.Actual[i],
		}
	}

	return gocsv.Marshal(predictions, w)
}
