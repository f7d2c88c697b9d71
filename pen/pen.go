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

// Package pen implements the drawing overlay of a B-spline or Spiro pen.
//
// An [Overlay] receives decoded pointer events (a position plus the state
// of the shift key) and maintains the skeleton being drawn. The segment
// from the last placed node to the pointer is provisional; it is
// recomputed on every motion event and becomes part of the skeleton when
// the pointer is pressed. After every change to the skeleton the whole
// curve is fitted again and passed to the optional [Renderer].
package pen

import (
	"errors"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pathfit"
)

// State is the state of the drawing gesture.
type State int

const (
	// Point waits for the next node to be placed.
	Point State = iota

	// Control is entered when a node is placed and lasts until the
	// pointer is released. Dragging in this state changes the node type.
	Control

	// Close is active while the pointer hovers over the start of the
	// drawing. Pressing in this state closes the path.
	Close

	// Stop means that no gesture is in progress.
	Stop
)

func (s State) String() string {
	switch s {
	case Point:
		return "point"
	case Control:
		return "control"
	case Close:
		return "close"
	case Stop:
		return "stop"
	default:
		return "State(?)"
	}
}

// Mode selects the reconstruction used for the preview and the result.
type Mode int

const (
	BSpline Mode = iota
	Spiro
)

// Anchor is an existing path which the drawing continues.
type Anchor struct {
	Path *path.Data

	// Start is set if drawing continues from the start of Path. In this
	// case the first subpath of Path is used and reversed. Otherwise
	// drawing continues from the end of the last subpath.
	Start bool
}

// Renderer receives the fitted curve after every change of the skeleton.
type Renderer interface {
	Redraw(fitted *path.Data)
}

// Options configures an [Overlay].
type Options struct {
	Mode Mode

	// Gap is added to both coordinates of new handles.
	Gap float64

	// Tolerance is used when segments are appended to the skeleton.
	// End points closer than this, in both coordinates, are merged.
	Tolerance float64

	// CloseRadius is the distance from the start of the drawing within
	// which the pointer snaps to the start point.
	CloseRadius float64

	// Renderer, if set, is called with the fitted curve.
	Renderer Renderer
}

// DefaultOptions returns the options for a B-spline pen.
func DefaultOptions() Options {
	return Options{
		Mode:        BSpline,
		Gap:         pathfit.HandleGap,
		Tolerance:   defaultTolerance,
		CloseRadius: defaultCloseRadius,
	}
}

// Result is the outcome of a finished drawing.
type Result struct {
	// Skeleton holds the nodes and handles as drawn, including the
	// anchor path.
	Skeleton *path.Data

	// Fitted is the reconstructed curve.
	Fitted *path.Data

	// Closed reports whether the drawing was closed.
	Closed bool
}

// ErrEmpty is returned by [Overlay.Finish] if no segment has been placed.
var ErrEmpty = errors.New("pen: nothing drawn")

// Overlay tracks one drawing gesture.
//
// An Overlay is not safe for concurrent use.
type Overlay struct {
	opts  Options
	state State

	anchor    pathfit.Subpath
	hasAnchor bool

	start  vec.Vec2
	green  []pathfit.Segment
	red    pathfit.Segment
	hasRed bool
	closed bool
}

// New returns an idle overlay. Zero values of Tolerance and CloseRadius
// are replaced by the defaults.
func New(opts Options) *Overlay {
	if opts.Tolerance <= 0 {
		opts.Tolerance = defaultTolerance
	}
	if opts.CloseRadius <= 0 {
		opts.CloseRadius = defaultCloseRadius
	}
	return &Overlay{opts: opts, state: Stop}
}

// State returns the current state of the gesture.
func (o *Overlay) State() State {
	return o.state
}

// Start begins a new drawing at pt. Any unfinished drawing is discarded.
//
// If anchor is not nil, the drawing continues the anchor path instead and
// pt is ignored. In B-spline mode the node at the anchor becomes smooth,
// or a cusp if shift is set.
func (o *Overlay) Start(pt vec.Vec2, shift bool, anchor *Anchor) {
	o.reset()
	o.state = Point
	o.start = pt

	if anchor == nil {
		return
	}
	subs := pathfit.Subpaths(anchor.Path)
	if len(subs) == 0 {
		return
	}
	var sp pathfit.Subpath
	if anchor.Start {
		sp = pathfit.Reverse(subs[0])
	} else {
		sp = subs[len(subs)-1]
		sp.Segments = slices.Clone(sp.Segments)
	}
	if sp.Closed {
		return
	}
	o.anchor = sp
	o.hasAnchor = true
	o.start = sp.Start()
	if o.opts.Mode == BSpline {
		o.setEndHandle(&o.anchor.Segments[len(o.anchor.Segments)-1], shift)
	}
}

// Motion updates the provisional segment, which runs from the last node
// to pt. If shift is set, the new node is a cusp.
func (o *Overlay) Motion(pt vec.Vec2, shift bool) {
	switch o.state {
	case Stop:
		return
	case Control:
		o.Drag(pt, shift)
		return
	}

	p0 := o.end()
	p3 := pt
	o.state = Point
	if o.canClose() && pt.Sub(o.start).Length() <= o.opts.CloseRadius {
		p3 = o.start
		o.state = Close
	}
	o.red = o.provisional(p0, p3, shift)
	o.hasRed = true
}

// Press places a node at pt, or at the start point when the overlay is in
// state Close. The provisional segment becomes part of the skeleton and
// the curve is fitted again. Pressing in state Close closes the drawing
// and ends the gesture.
func (o *Overlay) Press(pt vec.Vec2, shift bool) {
	if o.state == Stop || o.state == Control {
		return
	}
	o.Motion(pt, shift)
	closing := o.state == Close

	if !zeroLength(o.red) {
		if closing && o.opts.Mode == BSpline {
			o.reshapeStart(shift)
		}
		sp := pathfit.AppendContinuous(
			pathfit.Subpath{Segments: o.green},
			pathfit.Subpath{Segments: []pathfit.Segment{o.red}},
			o.opts.Tolerance)
		o.green = sp.Segments
	}
	o.hasRed = false

	if closing {
		o.closed = true
		o.state = Stop
	} else {
		o.state = Control
	}
	o.refit()
}

// Drag changes the type of the node placed by the last press: smooth by
// default, or a cusp if shift is set. It has no effect outside of state
// Control.
func (o *Overlay) Drag(pt vec.Vec2, shift bool) {
	if o.state != Control || len(o.green) == 0 {
		return
	}
	last := &o.green[len(o.green)-1]
	before := *last
	o.setEndHandle(last, shift)
	if *last != before {
		o.refit()
	}
}

// Release ends the press started by [Overlay.Press].
func (o *Overlay) Release(pt vec.Vec2, shift bool) {
	if o.state == Control {
		o.state = Point
	}
}

// Cancel discards the provisional segment and stops the gesture.
// Placed segments are kept and can still be committed by
// [Overlay.Finish].
func (o *Overlay) Cancel() {
	o.hasRed = false
	o.state = Stop
}

// Undo removes the most recently placed segment, together with the
// provisional segment. Undoing the segment which closed the drawing
// reopens it, and drawing can continue.
func (o *Overlay) Undo() {
	o.hasRed = false
	if len(o.green) == 0 {
		return
	}
	o.green = o.green[:len(o.green)-1]
	if o.state != Stop || o.closed {
		o.state = Point
	}
	o.closed = false
	o.refit()
}

// Skeleton returns the current skeleton, including the anchor path and
// the provisional segment.
func (o *Overlay) Skeleton() *path.Data {
	return pathfit.Build([]pathfit.Subpath{o.skeleton(true)})
}

// Preview returns the fitted curve for [Overlay.Skeleton].
func (o *Overlay) Preview() *path.Data {
	return o.fit(o.Skeleton())
}

// Finish ends the gesture and returns the drawing. The path is closed if
// closed is set, if the gesture ended by pressing on the start point, or
// if the drawing ends where it started. The provisional segment is
// discarded.
func (o *Overlay) Finish(closed bool) (*Result, error) {
	if len(o.green) == 0 {
		o.reset()
		return nil, ErrEmpty
	}

	sp := o.skeleton(false)
	sp.Closed = closed || o.closed || sp.End().Sub(sp.Start()).Length() <= o.opts.Tolerance
	skel := pathfit.Build([]pathfit.Subpath{sp})
	res := &Result{
		Skeleton: skel,
		Fitted:   o.fit(skel),
		Closed:   sp.Closed,
	}

	pathfit.Logger().Debug("pen drawing finished",
		"nodes", pathfit.NodeCount(skel),
		"closed", sp.Closed)

	o.reset()
	return res, nil
}

func (o *Overlay) reset() {
	o.state = Stop
	o.anchor = pathfit.Subpath{}
	o.hasAnchor = false
	o.green = nil
	o.hasRed = false
	o.closed = false
}

// skeleton joins the anchor, the placed segments and optionally the
// provisional segment.
func (o *Overlay) skeleton(withRed bool) pathfit.Subpath {
	var segs []pathfit.Segment
	if o.hasAnchor {
		segs = append(segs, o.anchor.Segments...)
	}
	segs = append(segs, o.green...)
	if withRed && o.hasRed && !zeroLength(o.red) {
		segs = append(segs, o.red)
	}
	return pathfit.Subpath{Segments: segs, Closed: o.closed}
}

// end returns the point from which the next segment starts.
func (o *Overlay) end() vec.Vec2 {
	if n := len(o.green); n > 0 {
		return o.green[n-1].P3
	}
	if o.hasAnchor {
		return o.anchor.End()
	}
	return o.start
}

// prev returns the segment which ends at the current end point.
func (o *Overlay) prev() (pathfit.Segment, bool) {
	if n := len(o.green); n > 0 {
		return o.green[n-1], true
	}
	if o.hasAnchor {
		return o.anchor.Segments[len(o.anchor.Segments)-1], true
	}
	return pathfit.Segment{}, false
}

func (o *Overlay) canClose() bool {
	return len(o.green) > 0 || o.hasAnchor
}

// provisional computes the segment from p0 to p3. The first handle
// continues the previous segment: in B-spline mode it is placed at the
// weight of the previous segment's last handle, in Spiro mode it mirrors
// that handle. The second handle sits at the one third point, or on p3 if
// shift is set.
func (o *Overlay) provisional(p0, p3 vec.Vec2, shift bool) pathfit.Segment {
	gap := vec.Vec2{X: o.opts.Gap, Y: o.opts.Gap}

	var p1 vec.Vec2
	prev, ok := o.prev()
	switch {
	case !ok:
		p1 = p0.Add(p3.Sub(p0).Mul(1. / 3)).Add(gap)
	case prev.Kind == pathfit.LineKind || isRetracted(prev.P2, prev.P3):
		p1 = p0
	case o.opts.Mode == BSpline:
		w := pathfit.WeightOf(prev.Reverse())
		p1 = p0.Add(p3.Sub(p0).Mul(w)).Add(gap)
	default:
		p1 = p0.Add(prev.P3.Sub(prev.P2)).Add(gap)
	}

	p2 := p3
	if !shift {
		p2 = p3.Add(p0.Sub(p3).Mul(1. / 3)).Add(gap)
	}
	return pathfit.CubicSegment(p0, p1, p2, p3)
}

// setEndHandle makes the node at the end of s smooth or, if cusp is set,
// retracts the handle onto the node.
func (o *Overlay) setEndHandle(s *pathfit.Segment, cusp bool) {
	if cusp {
		s.P2 = s.P3
		return
	}
	gap := vec.Vec2{X: o.opts.Gap, Y: o.opts.Gap}
	s.Kind = pathfit.CubicKind
	s.P2 = s.P3.Add(s.P0.Sub(s.P3).Mul(1. / 3)).Add(gap)
}

// reshapeStart sets the type of the start node when the drawing is
// closed.
func (o *Overlay) reshapeStart(cusp bool) {
	var first *pathfit.Segment
	switch {
	case o.hasAnchor:
		first = &o.anchor.Segments[0]
	case len(o.green) > 0:
		first = &o.green[0]
	default:
		return
	}
	if cusp {
		first.P1 = first.P0
		return
	}
	gap := vec.Vec2{X: o.opts.Gap, Y: o.opts.Gap}
	first.Kind = pathfit.CubicKind
	first.P1 = first.P0.Add(first.P3.Sub(first.P0).Mul(1. / 3)).Add(gap)
}

func (o *Overlay) fit(skel *path.Data) *path.Data {
	if o.opts.Mode == Spiro {
		return pathfit.ReconstructSpiro(skel)
	}
	return pathfit.RenderBSpline(skel)
}

func (o *Overlay) refit() {
	if o.opts.Renderer == nil {
		return
	}
	skel := pathfit.Build([]pathfit.Subpath{o.skeleton(false)})
	pathfit.Logger().Debug("pen refit",
		"nodes", pathfit.NodeCount(skel),
		"state", o.state.String())
	o.opts.Renderer.Redraw(o.fit(skel))
}

func zeroLength(s pathfit.Segment) bool {
	return isRetracted(s.P0, s.P3)
}

func isRetracted(handle, node vec.Vec2) bool {
	return handle.Sub(node).Length() <= retractedTolerance
}

const (
	defaultTolerance   = 0.0625
	defaultCloseRadius = 4

	retractedTolerance = 1e-6
)
