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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"bytes"
	"context"
	"io"
	"time"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/metrics"
	"d7y.io/explorer/explorer/projection"
	"d7y.io/explorer/explorer/training"
	"d7y.io/explorer/explorer/types"
	logger "d7y.io/explorer/internal/dflog"
)

type Service interface {
	Datasets(context.Context) []dataset.Summary
	Evaluate(context.Context, types.EvaluateRequest) (*types.Evaluation, error)
	Projection(context.Context, types.DatasetParams) ([]byte, error)
	PredictSample(context.Context, types.PredictSampleRequest) (*types.SamplePrediction, error)
	PredictBatch(context.Context, types.PredictBatchQuery, io.Reader) (*inference.Table, error)
	Explore(context.Context, types.ExploreRequest, io.Reader) (*types.Exploration, error)
}

type service struct {
	provider      dataset.Provider
	training      training.Training
	renderOptions []projection.Option
}

// Option is a functional option for service
type Option func(s *service)

// WithTraining set the training used by evaluations
func WithTraining(t training.Training) Option {
	return func(s *service) {
		s.training = t
	}
}

// WithRenderOptions set the options of the projection plot
func WithRenderOptions(options ...projection.Option) Option {
	return func(s *service) {
		s.renderOptions = options
	}
}

// New returns a new Service instence
func New(provider dataset.Provider, options ...Option) Service {
	s := &service{
		provider: provider,
		training: training.New(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

func (s *service) Datasets(ctx context.Context) []dataset.Summary {
	summaries := make([]dataset.Summary, 0, len(dataset.IDs()))
	for _, id := range dataset.IDs() {
		ds, err := s.provider.Load(id)
		if err != nil {
			logger.Warnf("load dataset %s failed: %s", id, err.Error())
			summaries = append(summaries, dataset.Summary{ID: id.Slug(), Name: id.String()})
			continue
		}

		summaries = append(summaries, ds.Summary())
	}

	return summaries
}

func (s *service) Evaluate(ctx context.Context, req types.EvaluateRequest) (*types.Evaluation, error) {
	ds, params, err := s.prepare(req.Dataset, req.Classifier, req.ClassifierParams)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, ds, params)
	if err != nil {
		return nil, err
	}

	return s.evaluation(ds, params, result)
}

func (s *service) Projection(ctx context.Context, params types.DatasetParams) ([]byte, error) {
	id, err := dataset.ParseID(params.ID)
	if err != nil {
		return nil, err
	}

	ds, err := s.provider.Load(id)
	if err != nil {
		return nil, err
	}

	plot, _, err := s.render(ds)
	return plot, err
}

func (s *service) PredictSample(ctx context.Context, req types.PredictSampleRequest) (*types.SamplePrediction, error) {
	ds, params, err := s.prepare(req.Dataset, req.Classifier, req.ClassifierParams)
	if err != nil {
		return nil, err
	}

	if err := inference.Supported(ds.ID); err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, ds, params)
	if err != nil {
		return nil, err
	}

	class, err := s.predictSample(ds, params, result, req.Sample)
	if err != nil {
		return nil, err
	}

	return &types.SamplePrediction{
		Classifier: params.Kind().String(),
		Accuracy:   result.Accuracy,
		Sample:     req.Sample,
		Class:      class,
	}, nil
}

func (s *service) PredictBatch(ctx context.Context, query types.PredictBatchQuery, r io.Reader) (*inference.Table, error) {
	if query.Dataset == "" {
		query.Dataset = dataset.Iris.String()
	}

	ds, params, err := s.prepare(query.Dataset, query.Classifier, query.ClassifierParams)
	if err != nil {
		return nil, err
	}

	if err := inference.Supported(ds.ID); err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, ds, params)
	if err != nil {
		return nil, err
	}

	return s.predictBatch(ds, params, result, r)
}

// Explore fits the classifier once and predicts the sample and the optional
// batch with it. Prediction failures are reported on the exploration.
func (s *service) Explore(ctx context.Context, req types.ExploreRequest, batch io.Reader) (*types.Exploration, error) {
	ds, params, err := s.prepare(req.Dataset, req.Classifier, req.ClassifierParams)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, ds, params)
	if err != nil {
		return nil, err
	}

	evaluation, err := s.evaluation(ds, params, result)
	if err != nil {
		return nil, err
	}

	exploration := &types.Exploration{Evaluation: evaluation}
	if inference.Supported(ds.ID) != nil {
		return exploration, nil
	}
	exploration.Inference = true

	exploration.Sample = req.Sample
	if len(exploration.Sample) == 0 {
		exploration.Sample = make([]float64, ds.Dims())
	}

	if class, err := s.predictSample(ds, params, result, exploration.Sample); err != nil {
		exploration.SampleError = err.Error()
	} else {
		exploration.SampleClass = class
	}

	if batch == nil {
		return exploration, nil
	}

	if table, err := s.predictBatch(ds, params, result, batch); err != nil {
		exploration.BatchError = err.Error()
	} else {
		exploration.Batch = table
	}

	return exploration, nil
}

// prepare resolves the dataset and the classifier parameters of a request.
func (s *service) prepare(name, kind string, cp types.ClassifierParams) (*dataset.Dataset, classifier.Params, error) {
	id, err := dataset.ParseID(name)
	if err != nil {
		return nil, nil, err
	}

	k, err := classifier.ParseKind(kind)
	if err != nil {
		return nil, nil, err
	}

	params, err := classifier.ParseParams(k, cp.Values())
	if err != nil {
		return nil, nil, err
	}

	ds, err := s.provider.Load(id)
	if err != nil {
		return nil, nil, err
	}

	return ds, params, nil
}

func (s *service) evaluate(ctx context.Context, ds *dataset.Dataset, params classifier.Params) (*training.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logger.WithEvaluation(ds.ID.String(), params.Kind().String())
	labels := []string{ds.ID.String(), params.Kind().String()}
	metrics.EvaluationCount.WithLabelValues(labels...).Inc()

	start := time.Now()
	result, err := s.training.Evaluate(ds, params)
	if err != nil {
		metrics.EvaluationFailureCount.WithLabelValues(labels...).Inc()
		log.Errorf("evaluate failed: %s", err.Error())
		return nil, err
	}

	metrics.EvaluationDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	metrics.EvaluationAccuracy.WithLabelValues(labels...).Set(result.Accuracy)
	log.Infof("evaluate %v, accuracy %f, cost %s", params.Values(), result.Accuracy, time.Since(start))
	return result, nil
}

// evaluation renders the dataset and reports the result.
func (s *service) evaluation(ds *dataset.Dataset, params classifier.Params, result *training.Result) (*types.Evaluation, error) {
	plot, ratio, err := s.render(ds)
	if err != nil {
		return nil, err
	}

	return &types.Evaluation{
		Dataset:                ds.Summary(),
		Classifier:             params.Kind().String(),
		Params:                 params.Values(),
		Accuracy:               result.Accuracy,
		TrainSize:              result.TrainSize,
		TestSize:               result.TestSize,
		ExplainedVarianceRatio: ratio,
		Plot:                   plot,
	}, nil
}

func (s *service) predictSample(ds *dataset.Dataset, params classifier.Params, result *training.Result, sample []float64) (string, error) {
	metrics.PredictionCount.WithLabelValues(metrics.SamplePredictionType, params.Kind().String()).Inc()
	class, err := inference.PredictSample(result.Classifier, ds, sample)
	if err != nil {
		metrics.PredictionFailureCount.WithLabelValues(metrics.SamplePredictionType, params.Kind().String()).Inc()
		logger.WithEvaluation(ds.ID.String(), params.Kind().String()).Errorf("predict sample failed: %s", err.Error())
		return "", err
	}

	return class, nil
}

func (s *service) predictBatch(ds *dataset.Dataset, params classifier.Params, result *training.Result, r io.Reader) (*inference.Table, error) {
	metrics.PredictionCount.WithLabelValues(metrics.BatchPredictionType, params.Kind().String()).Inc()
	table, err := inference.PredictBatch(result.Classifier, ds, r)
	if err != nil {
		metrics.PredictionFailureCount.WithLabelValues(metrics.BatchPredictionType, params.Kind().String()).Inc()
		logger.WithEvaluation(ds.ID.String(), params.Kind().String()).Errorf("predict batch failed: %s", err.Error())
		return nil, err
	}

	return table, nil
}

// render projects the full dataset and draws it as png.
func (s *service) render(ds *dataset.Dataset) ([]byte, []float64, error) {
	metrics.ProjectionCount.WithLabelValues(ds.ID.String()).Inc()
	plot, ratio, err := func() ([]byte, []float64, error) {
		proj, err := projection.Project(ds.Features)
		if err != nil {
			return nil, nil, err
		}

		ratio, err := projection.ExplainedVarianceRatio(ds.Features, proj)
		if err != nil {
			return nil, nil, err
		}

		var buf bytes.Buffer
		if err := projection.Render(&buf, proj, ds.Labels, ds.ClassNames, s.renderOptions...); err != nil {
			return nil, nil, err
		}

		return buf.Bytes(), ratio, nil
	}()
	if err != nil {
		metrics.ProjectionFailureCount.WithLabelValues(ds.ID.String()).Inc()
		logger.Errorf("render projection of %s failed: %s", ds.ID, err.Error())
		return nil, nil, err
	}

	return plot, ratio, nil
}
