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

// Command genpdf draws every test case into a PDF file, showing the
// skeleton in grey with its nodes marked and the fitted curve in black.
// With -png, the fitted curves are also rendered to PNG images.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pathfit"
	"seehuhn.de/go/pathfit/preview"
	"seehuhn.de/go/pathfit/testcases"
)

func main() {
	outDir := flag.String("d", "testdata/fits", "output directory")
	withPNG := flag.Bool("png", false, "also write PNG images")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fail(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			base := filepath.Join(*outDir, name)

			if err := generatePDF(tc, base+".pdf"); err != nil {
				fail(fmt.Errorf("%s: %w", name, err))
			}
			if *withPNG {
				if err := generatePNG(tc, base+".png"); err != nil {
					fail(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "genpdf:", err)
	os.Exit(1)
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	// 1 point = 1 pixel at 72 DPI
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// test cases assume the origin in the top-left corner
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})

	skel := tc.Input()
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	// skeleton, including the handles
	page.SetStrokeColor(color.DeviceGray(0.7))
	page.SetLineWidth(0.25)
	drawPath(page, skel)
	page.Stroke()
	for _, sp := range pathfit.Subpaths(skel) {
		for _, s := range sp.Loop() {
			if s.Kind != pathfit.CubicKind {
				continue
			}
			page.MoveTo(s.P0.X, s.P0.Y)
			page.LineTo(s.P1.X, s.P1.Y)
			page.MoveTo(s.P3.X, s.P3.Y)
			page.LineTo(s.P2.X, s.P2.Y)
		}
	}
	page.Stroke()

	// nodes
	const r = 0.75
	for _, sp := range pathfit.Subpaths(skel) {
		for _, node := range pathfit.Nodes(sp) {
			page.Rectangle(node.Pt.X-r, node.Pt.Y-r, 2*r, 2*r)
		}
	}
	page.SetFillColor(color.DeviceGray(0.4))
	page.Fill()

	// fitted curve
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.5)
	drawPath(page, tc.Fitted())
	page.Stroke()

	return page.Close()
}

// pathBuilder is the part of the page API used for path construction.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// drawPath constructs p on the page. Quadratic segments are converted to
// cubics, since PDF has no quadratic curves.
func drawPath(page pathBuilder, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

func generatePNG(tc testcases.TestCase, pngPath string) error {
	pv := preview.New(tc.Width, tc.Height)
	pv.AutoFit = false
	pv.View = matrix.Identity
	pv.Redraw(tc.Fitted())

	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := pv.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
