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

// Command pathfit reads SVG path data, reconstructs it as a B-spline or
// spiro curve, and writes the resulting path data to standard output.
//
// Usage:
//
//	pathfit [flags] [file]
//
// The path data is read from file, or from standard input if no file is
// given. Settings can be stored in a TOML file, see -config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pathfit"
	"seehuhn.de/go/pathfit/pathdata"
	"seehuhn.de/go/pathfit/preview"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "pathfit:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("pathfit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("config", "", "read settings from this TOML `file`")
	mode := flags.String("mode", modeBSpline, "reconstruction: bspline or spiro")
	weight := flags.Float64("weight", pathfit.DefaultWeight, "B-spline handle weight")
	gap := flags.Float64("gap", pathfit.HandleGap, "offset added to moved handles")
	ignoreCusp := flags.Bool("ignore-cusp", false, "keep retracted handles and straight lines")
	prec := flags.Int("prec", 6, "decimals in the output path data")
	pdfFile := flags.String("pdf", "", "also draw the curve into this PDF `file`")
	pngFile := flags.String("png", "", "also render the curve into this PNG `file`")
	size := flags.Int("size", 512, "PNG image size in pixels")
	verbose := flags.Bool("v", false, "log debug messages")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		return errors.New("too many arguments")
	}

	cfg := defaultConfig()
	if *configFile != "" {
		if err := loadConfig(cfg, *configFile); err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "weight":
			cfg.BSpline.Weight = *weight
		case "gap":
			cfg.BSpline.Gap = *gap
		case "ignore-cusp":
			cfg.BSpline.IgnoreCusp = *ignoreCusp
		case "prec":
			cfg.Precision = *prec
		case "pdf":
			cfg.Output.PDF = *pdfFile
		case "png":
			cfg.Output.PNG = *pngFile
		case "size":
			cfg.Output.Size = *size
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}

	level, _ := cfg.level()
	pathfit.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	var in io.Reader = stdin
	if flags.NArg() == 1 {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	skel, err := pathdata.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}

	fitted := fit(cfg, skel)
	pathfit.Logger().Info("path fitted",
		"mode", cfg.Mode,
		"nodes", pathfit.NodeCount(skel),
		"segments", pathfit.SegmentCount(fitted))

	if _, err := fmt.Fprintln(stdout, pathdata.Format(fitted, cfg.Precision)); err != nil {
		return err
	}
	if cfg.Output.PDF != "" {
		if err := writePDF(cfg.Output.PDF, skel, fitted); err != nil {
			return err
		}
	}
	if cfg.Output.PNG != "" {
		if err := writePNG(cfg.Output.PNG, cfg.Output.Size, fitted); err != nil {
			return err
		}
	}
	return nil
}

// fit applies the reconstruction selected in cfg.
func fit(cfg *Config, skel *path.Data) *path.Data {
	if cfg.Mode == modeSpiro {
		return pathfit.ReconstructSpiro(skel)
	}
	return pathfit.RenderBSpline(pathfit.ReconstructBSpline(skel, cfg.bsplineOptions()))
}

// pathBuilder is the part of the page API used for path construction.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

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

// writePDF draws the skeleton in grey and the fitted curve in black on a
// page just large enough to hold both.
func writePDF(fname string, skel, fitted *path.Data) error {
	const margin = 10
	bbox := pathfit.Bounds(skel)
	fb := pathfit.Bounds(fitted)
	bbox.LLx, bbox.LLy = min(bbox.LLx, fb.LLx), min(bbox.LLy, fb.LLy)
	bbox.URx, bbox.URy = max(bbox.URx, fb.URx), max(bbox.URy, fb.URy)

	paper := &pdf.Rectangle{
		URx: bbox.URx - bbox.LLx + 2*margin,
		URy: bbox.URy - bbox.LLy + 2*margin,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	page.Transform(matrix.Identity.Translate(margin-bbox.LLx, margin-bbox.LLy))
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	page.SetStrokeColor(color.DeviceGray(0.7))
	page.SetLineWidth(0.5)
	drawPath(page, skel)
	page.Stroke()

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1)
	drawPath(page, fitted)
	page.Stroke()

	return page.Close()
}

func writePNG(fname string, size int, fitted *path.Data) error {
	pv := preview.New(size, size)
	pv.Redraw(fitted)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := pv.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
