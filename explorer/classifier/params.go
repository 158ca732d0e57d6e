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

package classifier

import (
	"fmt"
	"math"

	"d7y.io/explorer/internal/dferrors"
)

const (
	// MinC is the minimum regularization of SVM.
	MinC = 0.01

	// MaxC is the maximum regularization of SVM.
	MaxC = 10.0

	// MinK is the minimum neighbor count of KNN.
	MinK = 1

	// MaxK is the maximum neighbor count of KNN.
	MaxK = 15

	// MinMaxDepth is the minimum tree depth bound of random forest.
	MinMaxDepth = 2

	// MaxMaxDepth is the maximum tree depth bound of random forest.
	MaxMaxDepth = 15

	// MinNEstimators is the minimum tree count of random forest.
	MinNEstimators = 1

	// MaxNEstimators is the maximum tree count of random forest.
	MaxNEstimators = 100
)

// Parameter names used by ParseParams.
const (
	ParamC           = "C"
	ParamK           = "K"
	ParamMaxDepth    = "max_depth"
	ParamNEstimators = "n_estimators"
)

// Params is the hyperparameter set of one classifier family,
// it is implemented by SVMParams, KNNParams and RandomForestParams only.
type Params interface {
	// Kind returns the classifier family.
	Kind() Kind

	// Validate checks every value against its bounds.
	Validate() error

	// Values returns the parameters by name.
	Values() map[string]float64

	isParams()
}

type SVMParams struct {
	C float64 `json:"C"`
}

func (SVMParams) Kind() Kind { return SVM }

func (p SVMParams) Validate() error {
	if math.IsNaN(p.C) || p.C < MinC || p.C > MaxC {
		return outOfRange(ParamC, p.C, MinC, MaxC)
	}

	return nil
}

func (p SVMParams) Values() map[string]float64 {
	return map[string]float64{ParamC: p.C}
}

func (SVMParams) isParams() {}

type KNNParams struct {
	K int `json:"K"`
}

func (KNNParams) Kind() Kind { return KNN }

func (p KNNParams) Validate() error {
	if p.K < MinK || p.K > MaxK {
		return outOfRange(ParamK, float64(p.K), MinK, MaxK)
	}

	return nil
}

func (p KNNParams) Values() map[string]float64 {
	return map[string]float64{ParamK: float64(p.K)}
}

func (KNNParams) isParams() {}

type RandomForestParams struct {
	MaxDepth    int `json:"max_depth"`
	NEstimators int `json:"n_estimators"`
}

func (RandomForestParams) Kind() Kind { return RandomForest }

func (p RandomForestParams) Validate() error {
	if p.MaxDepth < MinMaxDepth || p.MaxDepth > MaxMaxDepth {
		return outOfRange(ParamMaxDepth, float64(p.MaxDepth), MinMaxDepth, MaxMaxDepth)
	}

	if p.NEstimators < MinNEstimators || p.NEstimators > MaxNEstimators {
		return outOfRange(ParamNEstimators, float64(p.NEstimators), MinNEstimators, MaxNEstimators)
	}

	return nil
}

func (p RandomForestParams) Values() map[string]float64 {
	return map[string]float64{
		ParamMaxDepth:    float64(p.MaxDepth),
		ParamNEstimators: float64(p.NEstimators),
	}
}

func (RandomForestParams) isParams() {}

// DefaultParams returns the lower bound of every parameter, which is where the controls start.
func DefaultParams(kind Kind) (Params, error) {
	switch kind {
	case SVM:
		return SVMParams{C: MinC}, nil
	case KNN:
		return KNNParams{K: MinK}, nil
	case RandomForest:
		return RandomForestParams{MaxDepth: MinMaxDepth, NEstimators: MinNEstimators}, nil
	default:
		return nil, fmt.Errorf("%w: %s", dferrors.ErrUnknownClassifier, kind)
	}
}

// ParseParams builds the parameters of kind from control values,
// missing values fall back to DefaultParams.
func ParseParams(kind Kind, values map[string]float64) (Params, error) {
	p, err := DefaultParams(kind)
	if err != nil {
		return nil, err
	}

	switch p := p.(type) {
	case SVMParams:
		if v, ok := values[ParamC]; ok {
			p.C = v
		}
		return p, p.Validate()
	case KNNParams:
		if v, ok := values[ParamK]; ok {
			if p.K, err = toInt(ParamK, v); err != nil {
				return nil, err
			}
		}
		return p, p.Validate()
	case RandomForestParams:
		if v, ok := values[ParamMaxDepth]; ok {
			if p.MaxDepth, err = toInt(ParamMaxDepth, v); err != nil {
				return nil, err
			}
		}
		if v, ok := values[ParamNEstimators]; ok {
			if p.NEstimators, err = toInt(ParamNEstimators, v); err != nil {
				return nil, err
			}
		}
		return p, p.Validate()
	default:
		return nil, fmt.Errorf("%w: %s", dferrors.ErrUnknownClassifier, kind)
	}
}

func toInt(name string, v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", dferrors.ErrParameterOutOfRange, name, v)
	}

	return int(v), nil
}

func outOfRange(name string, v, min, max float64) error {
	return fmt.Errorf("%w: %s=%v is out of [%v, %v]", dferrors.ErrParameterOutOfRange, name, v, min, max)
}
