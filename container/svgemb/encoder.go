/*
NAME
  encoder.go - SVG-embroidery encoding.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package svgemb

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/ausocean/pes/stitch"
)

// ErrNoThread is returned by AppendPoint when called before any
// AppendThread.
var ErrNoThread = errors.New("svgemb: no thread appended")

// Encoder builds an SVG-embroidery document incrementally.
type Encoder struct {
	transform stitch.Affine
	threads   []stitch.Thread
	paths     []Path
}

// NewEncoder returns an empty Encoder with an identity transform.
func NewEncoder() *Encoder {
	return &Encoder{transform: stitch.Identity()}
}

// SetTransform sets the affine transform recorded in the optional <g>
// wrapper. An identity transform omits the wrapper entirely.
func (e *Encoder) SetTransform(t stitch.Affine) { e.transform = t }

// AppendThread starts a new color run (a new <path>).
func (e *Encoder) AppendThread(t stitch.Thread) {
	e.threads = append(e.threads, t)
	e.paths = append(e.paths, Path{ThreadIndex: len(e.threads) - 1})
}

// AppendPoint appends a point to the in-progress path. jump requests the
// "M" (move) command rather than "L" (line); the very first point of a
// path is always a move regardless of jump.
func (e *Encoder) AppendPoint(x, y float64, jump bool) error {
	if len(e.paths) == 0 {
		return ErrNoThread
	}
	i := len(e.paths) - 1
	first := len(e.paths[i].Points) == 0
	e.paths[i].Points = append(e.paths[i].Points, Point{X: x, Y: y, Jump: first || jump})
	return nil
}

// Encode renders the accumulated document as SVG-embroidery XML text.
// An Encoder with no appended points still produces a valid skeleton
// document with a zero-sized viewBox.
func (e *Encoder) Encode() ([]byte, error) {
	doc := Doc{Transform: e.transform, Threads: e.threads, Paths: e.paths}
	bounds := doc.Bounds()
	width, height := bounds.Width(), bounds.Height()

	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" standalone=\"no\"?>\n")
	b.WriteString("<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n")
	fmt.Fprintf(&b, "<svg width=\"%.1fmm\" height=\"%.1fmm\" viewBox=\"%.1f %.1f %.1f %.1f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		width, height, bounds.MinX, bounds.MinY, width, height)

	indent := ""
	if !e.transform.IsIdentity() {
		fmt.Fprintf(&b, "<g transform=\"matrix(%.7f %.7f %.7f %.7f %.7f %.7f)\">\n",
			e.transform.A, e.transform.B, e.transform.C, e.transform.D, e.transform.TX, e.transform.TY)
		indent = "  "
	}

	for _, p := range e.paths {
		if len(p.Points) == 0 {
			continue
		}
		t := e.threads[p.ThreadIndex]
		fmt.Fprintf(&b, "%s<path stroke=\"#%02x%02x%02x\" fill=\"none\" stroke-width=\"0.2\" d=\"", indent, t.RGB.R, t.RGB.G, t.RGB.B)
		writePathData(&b, p.Points)
		b.WriteString("\"/>\n")
	}

	if !e.transform.IsIdentity() {
		b.WriteString("</g>\n")
	}
	b.WriteString("</svg>\n")
	return b.Bytes(), nil
}

// writePathData writes "Mx y Lx y Lx y ..." for points (substituting
// "M" for any point marked Jump), breaking onto a new line every 4 points
// for readability, matching the reference encoder's layout.
func writePathData(b *bytes.Buffer, points []Point) {
	for i, pt := range points {
		cmd := byte('L')
		if pt.Jump {
			cmd = 'M'
		}
		if i == 0 {
			// no separator before the first command
		} else if i%4 == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%c%.1f %.1f", cmd, pt.X, pt.Y)
	}
}
