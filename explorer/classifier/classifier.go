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
	"strings"

	"github.com/sjwhitworth/golearn/base"

	"d7y.io/explorer/internal/dferrors"
)

// RandomSeed seeds every randomized step, so results are reproducible.
const RandomSeed int64 = 1234

// Kind is the classifier family.
type Kind int

const (
	KNN Kind = iota
	SVM
	RandomForest
)

// Kinds returns all classifier families in display order.
func Kinds() []Kind {
	return []Kind{KNN, SVM, RandomForest}
}

func (k Kind) String() string {
	switch k {
	case KNN:
		return "KNN"
	case SVM:
		return "SVM"
	case RandomForest:
		return "Random Forest"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Slug is the url friendly name.
func (k Kind) Slug() string {
	return strings.ReplaceAll(strings.ToLower(k.String()), " ", "_")
}

// ParseKind parses display names like "Random Forest" and slugs like "random_forest".
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if s == k.String() || strings.EqualFold(s, k.Slug()) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", dferrors.ErrUnknownClassifier, s)
}

// Classifier is a supervised model over golearn grids. The grid given to Fit
// holds float features and one categorical class attribute.
type Classifier interface {
	// Fit trains the model.
	Fit(base.FixedDataGrid) error

	// Predict returns a grid holding the predicted class of every row.
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)

	// String returns the display name and parameters.
	String() string
}

// New creates an unfitted classifier.
func New(p Params) (Classifier, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no parameters", dferrors.ErrUnknownClassifier)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch p := p.(type) {
	case KNNParams:
		return NewKNN(p.K), nil
	case SVMParams:
		return NewSVM(p.C), nil
	case RandomForestParams:
		return NewRandomForest(p.NEstimators, p.MaxDepth, WithSeed(RandomSeed)), nil
	default:
		return nil, fmt.Errorf("%w: %T", dferrors.ErrUnknownClassifier, p)
	}
}
