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

package view

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"

	"d7y.io/explorer/explorer/classifier"
	"d7y.io/explorer/explorer/dataset"
	"d7y.io/explorer/explorer/inference"
	"d7y.io/explorer/explorer/types"
)

// IndexTemplate is the name of the page template.
const IndexTemplate = "index.html"

var (
	//go:embed templates/*.html
	templates embed.FS

	//go:embed static
	assets embed.FS
)

// Control is a slider of one classifier parameter.
type Control struct {
	Name  string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// Page is the data of the page template.
type Page struct {
	Datasets    []string
	Classifiers []string
	Dataset     string
	Classifier  string
	Controls    []Control

	Summary    *dataset.Summary
	Evaluation *types.Evaluation
	Error      string

	// Inference is set when the dataset accepts user samples.
	Inference   bool
	SampleNames []string
	Sample      []float64
	SampleClass string
	SampleError string
	Batch       *inference.Table
	BatchError  string
}

// NewPage returns a page with every dataset and classifier selectable.
func NewPage(ds dataset.ID, kind classifier.Kind) *Page {
	p := &Page{
		Dataset:    ds.String(),
		Classifier: kind.String(),
	}

	for _, id := range dataset.IDs() {
		p.Datasets = append(p.Datasets, id.String())
	}

	for _, k := range classifier.Kinds() {
		p.Classifiers = append(p.Classifiers, k.String())
	}

	return p
}

// Controls returns the sliders of the classifier parameters.
func Controls(params classifier.Params) []Control {
	values := params.Values()
	switch params.Kind() {
	case classifier.SVM:
		return []Control{
			{Name: classifier.ParamC, Min: classifier.MinC, Max: classifier.MaxC, Step: 0.01, Value: values[classifier.ParamC]},
		}
	case classifier.KNN:
		return []Control{
			{Name: classifier.ParamK, Min: classifier.MinK, Max: classifier.MaxK, Step: 1, Value: values[classifier.ParamK]},
		}
	case classifier.RandomForest:
		return []Control{
			{Name: classifier.ParamMaxDepth, Min: classifier.MinMaxDepth, Max: classifier.MaxMaxDepth, Step: 1, Value: values[classifier.ParamMaxDepth]},
			{Name: classifier.ParamNEstimators, Min: classifier.MinNEstimators, Max: classifier.MaxNEstimators, Step: 1, Value: values[classifier.ParamNEstimators]},
		}
	default:
		return nil
	}
}

// Template parses the embedded page templates.
func Template() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"base64": base64.StdEncoding.EncodeToString,
	}).ParseFS(templates, "templates/*.html"))
}

// Static returns the embedded assets for static.Serve.
func Static() static.ServeFileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}

	return &embedFileSystem{FileSystem: http.FS(sub)}
}

type embedFileSystem struct {
	http.FileSystem
}

// Exists reports whether path names a file under prefix, directories are not served.
func (e *embedFileSystem) Exists(prefix string, path string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}

	f, err := e.Open(strings.TrimPrefix(path, prefix))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}
