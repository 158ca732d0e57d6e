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

package projection

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"d7y.io/explorer/internal/dferrors"
)

const (
	// DefaultWidth is the default width of the image.
	DefaultWidth = 6 * vg.Inch

	// DefaultHeight is the default height of the image.
	DefaultHeight = 4 * vg.Inch

	// DefaultAlpha is the default opacity of points.
	DefaultAlpha = 0.8

	// colorBarWidth is the width of the color bar panel.
	colorBarWidth = 0.9 * vg.Inch
)

// viridis holds the control colors of the viridis color map.
var viridis = []color.Color{
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.NRGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.NRGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

type renderOptions struct {
	width  vg.Length
	height vg.Length
	alpha  float64
	title  string
}

// Option is a functional option for configuring the rendering.
type Option func(o *renderOptions)

// WithSize sets the size of the image.
func WithSize(width, height vg.Length) Option {
	return func(o *renderOptions) {
		o.width = width
		o.height = height
	}
}

// WithAlpha sets the opacity of points.
func WithAlpha(alpha float64) Option {
	return func(o *renderOptions) {
		o.alpha = alpha
	}
}

// WithTitle sets the title of the scatter plot.
func WithTitle(title string) Option {
	return func(o *renderOptions) {
		o.title = title
	}
}

// Render draws the projection as a png scatter plot colored by label,
// with a vertical color bar mapping colors to label values.
func Render(w io.Writer, projection *mat.Dense, labels []int, classNames []string, options ...Option) error {
	o := &renderOptions{
		width:  DefaultWidth,
		height: DefaultHeight,
		alpha:  DefaultAlpha,
	}
	for _, opt := range options {
		opt(o)
	}

	n, k := projection.Dims()
	if k < Components {
		return fmt.Errorf("%w: projection has %d columns", dferrors.ErrDegenerateInput, k)
	}

	if n != len(labels) {
		return fmt.Errorf("%w: %d points but %d labels", dferrors.ErrDegenerateInput, n, len(labels))
	}

	cm, err := colorMap(len(classNames), o.alpha)
	if err != nil {
		return err
	}

	scatter, err := scatterPlot(projection, labels, cm, o.title)
	if err != nil {
		return err
	}

	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	bar.HideX()
	bar.Y.Padding = 0
	bar.Y.Tick.Marker = labelTicks(len(classNames))

	img := vgimg.New(o.width, o.height)
	dc := draw.New(img)
	scatter.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, o.width-colorBarWidth, 0, 0, 0))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return err
	}

	return nil
}

func scatterPlot(projection *mat.Dense, labels []int, cm palette.ColorMap, title string) (*plot.Plot, error) {
	points := make(plotter.XYs, len(labels))
	for i := range points {
		points[i].X = projection.At(i, 0)
		points[i].Y = projection.At(i, 1)
	}

	colors := make([]color.Color, len(labels))
	for i, label := range labels {
		c, err := cm.At(float64(label))
		if err != nil {
			return nil, fmt.Errorf("color of label %d: %w", label, err)
		}
		colors[i] = c
	}

	s, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  colors[i],
			Radius: vg.Points(3),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Principal Component 1"
	p.Y.Label.Text = "Principal Component 2"
	p.Add(s)

	return p, nil
}

// colorMap maps label values [0, classes-1] to viridis colors.
func colorMap(classes int, alpha float64) (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance(viridis)
	if err != nil {
		return nil, err
	}

	max := float64(classes - 1)
	if max <= 0 {
		max = 1
	}

	cm.SetMin(0)
	cm.SetMax(max)
	cm.SetAlpha(alpha)
	return cm, nil
}

func labelTicks(classes int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, classes)
	for label := 0; label < classes; label++ {
		ticks = append(ticks, plot.Tick{Value: float64(label), Label: fmt.Sprintf("%d", label)})
	}

	return ticks
}
