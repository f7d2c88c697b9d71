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

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pathfit"
	"seehuhn.de/go/pathfit/pathdata"
)

func runCLI(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := run(args, strings.NewReader(input), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestDecodeConfig(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig(cfg, strings.NewReader(`
mode = "spiro"
precision = 3

[bspline]
weight = 0.25
ignore_cusp = true
selected = [[1.0, 2.0], [3.0, 4.0]]

[output]
png = "out.png"
`))
	require.NoError(t, err)

	assert.Equal(t, modeSpiro, cfg.Mode)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, 0.25, cfg.BSpline.Weight)
	assert.True(t, cfg.BSpline.IgnoreCusp)
	assert.Equal(t, "out.png", cfg.Output.PNG)
	assert.Equal(t, 512, cfg.Output.Size, "unset values keep their default")

	opts := cfg.bsplineOptions()
	assert.True(t, opts.OnlySelected)
	require.Len(t, opts.Selected, 2)
	assert.Equal(t, 3.0, opts.Selected[1].X)
}

func TestDecodeConfigUnknownKey(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig(cfg, strings.NewReader("colour = \"red\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.validate())

	cfg.Mode = "bezier"
	assert.Error(t, cfg.validate())

	cfg = defaultConfig()
	cfg.BSpline.Weight = 1.5
	assert.Error(t, cfg.validate())

	cfg = defaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.validate())
}

func TestRunBSpline(t *testing.T) {
	out, _, err := runCLI(t, "M 0,0 L 10,0 L 10,10", "-gap", "0")
	require.NoError(t, err)

	fitted, err := pathdata.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 3, pathfit.NodeCount(fitted))
	assert.Contains(t, out, "8.333333,1.666667")
}

func TestRunSpiro(t *testing.T) {
	out, _, err := runCLI(t, "M 0,0 C 3,3 7,10 10,10 C 13,10 17,3 20,0", "-mode", "spiro")
	require.NoError(t, err)

	fitted, err := pathdata.Parse(out)
	require.NoError(t, err)
	subs := pathfit.Subpaths(fitted)
	require.Len(t, subs, 1)
	assert.Equal(t, pathfit.CubicKind, subs[0].Segments[0].Kind)
	assert.True(t, strings.HasPrefix(out, "M 0,0 "))
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "pathfit.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("mode = \"spiro\"\nprecision = 1\n"), 0o644))

	// the flag overrides the file
	out, _, err := runCLI(t, "M 0,0 L 10,0 L 10,10", "-config", cfgFile, "-mode", "bspline", "-gap", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "8.3,1.7")
}

func TestRunOutputs(t *testing.T) {
	dir := t.TempDir()
	pngFile := filepath.Join(dir, "out.png")
	pdfFile := filepath.Join(dir, "out.pdf")
	inFile := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(inFile, []byte("M 0,0 C 0,10 10,10 10,0 Z\n"), 0o644))

	_, _, err := runCLI(t, "", "-png", pngFile, "-size", "32", "-pdf", pdfFile, inFile)
	require.NoError(t, err)

	f, err := os.Open(pngFile)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	info, err := os.Stat(pdfFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunErrors(t *testing.T) {
	_, _, err := runCLI(t, "L 1,1")
	assert.ErrorIs(t, err, pathdata.ErrSyntax)

	_, _, err = runCLI(t, "M 0,0 A 1,1 0 0 1 2,2")
	assert.ErrorIs(t, err, pathdata.ErrUnsupported)

	_, _, err = runCLI(t, "M 0,0 L 1,1", "-mode", "nurbs")
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "a", "b")
	assert.Error(t, err)
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := runCLI(t, "M 0,0 L 10,0 L 10,10", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "path fitted")
	pathfit.SetLogger(nil)
}
