// seehuhn.de/go/pathfit - B-spline and Spiro path reconstruction
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package preview

import (
	"image"
	"image/png"
	"io"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pathfit"
)

// Preview draws paths into a grayscale image.
//
// A Preview can be used as the renderer of an interactive pen session:
// every call to [Preview.Redraw] replaces the image contents by the
// given path.
type Preview struct {
	Img *image.Alpha

	// AutoFit scales and translates every path passed to Redraw so that
	// it fills the image, leaving Margin pixels free on each side. If
	// AutoFit is false, View maps user space to image pixels.
	AutoFit bool
	Margin  float64
	View    matrix.Matrix

	// LineWidth is the stroke width in pixels.
	LineWidth float64

	// Fill fills the interior of paths instead of stroking them.
	Fill bool

	r *Rasterizer
}

// New allocates a Preview with an image of the given size.
func New(width, height int) *Preview {
	bounds := image.Rect(0, 0, width, height)
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &Preview{
		Img:       image.NewAlpha(bounds),
		AutoFit:   true,
		Margin:    defaultMargin,
		View:      matrix.Matrix{1, 0, 0, -1, 0, float64(height)},
		LineWidth: defaultLineWidth,
		r:         NewRasterizer(clip),
	}
}

// Redraw clears the image and draws p.
func (pv *Preview) Redraw(p *path.Data) {
	clear(pv.Img.Pix)
	if pv.AutoFit {
		pv.View = pv.fit(pathfit.Bounds(p))
	}
	pv.Draw(p)
	pathfit.Logger().Debug("preview redrawn",
		"segments", pathfit.SegmentCount(p),
		"nodes", pathfit.NodeCount(p))
}

// Draw adds p to the image, using the current view.
func (pv *Preview) Draw(p *path.Data) {
	r := pv.r
	r.CTM = pv.View
	scale := viewScale(pv.View)
	if scale == 0 {
		return
	}
	r.Width = pv.LineWidth / scale

	img := pv.Img
	emit := func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+xMin:]
		for i, c := range coverage {
			row[i] = max(row[i], uint8(c*255+0.5))
		}
	}
	if pv.Fill {
		r.Fill(p, emit)
	} else {
		r.Stroke(p, emit)
	}
}

// WritePNG encodes the image in PNG format.
func (pv *Preview) WritePNG(w io.Writer) error {
	return png.Encode(w, pv.Img)
}

// fit returns the view which maps bbox onto the image, preserving the
// aspect ratio and flipping the y-axis.
func (pv *Preview) fit(bbox rect.Rect) matrix.Matrix {
	w := float64(pv.Img.Rect.Dx())
	h := float64(pv.Img.Rect.Dy())
	availW := max(w-2*pv.Margin, 1)
	availH := max(h-2*pv.Margin, 1)

	bw := bbox.URx - bbox.LLx
	bh := bbox.URy - bbox.LLy
	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = min(availW/bw, availH/bh)
	case bw > 0:
		scale = availW / bw
	case bh > 0:
		scale = availH / bh
	}

	// center the path in the image
	dx := (w - bw*scale) / 2
	dy := (h - bh*scale) / 2
	return matrix.Matrix{
		scale, 0,
		0, -scale,
		dx - bbox.LLx*scale, h - dy + bbox.LLy*scale,
	}
}

// viewScale returns the geometric mean of the scale factors of m.
func viewScale(m matrix.Matrix) float64 {
	det := m[0]*m[3] - m[1]*m[2]
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}

const (
	defaultMargin    = 8
	defaultLineWidth = 1.5
)
