/*
NAME
  svgemb.go - the restricted "SVG-embroidery" document model.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

// Package svgemb decodes and encodes the restricted SVG subset used for
// lossless embroidery round-trip: one <path> per color run, stroke color
// mapped to a thread, and an optional <g transform="matrix(...)"> when
// the document carries a non-identity affine transform.
package svgemb

import "github.com/ausocean/pes/stitch"

// Point is one coordinate within a Path. Jump selects the SVG command
// used to reach it: true emits "M" (move, no visible line from the
// previous point), false emits "L" (draw a line from the previous
// point). The first point of a Path is always effectively a move.
type Point struct {
	X, Y float64
	Jump bool
}

// Path is one contiguous single-color run, rendered as one <path>
// element whose "d" may contain several M-prefixed subpaths if the run
// contains internal jumps.
type Path struct {
	ThreadIndex int // index into Doc.Threads
	Points      []Point
}

// Doc is a fully decoded (or not-yet-encoded) SVG-embroidery document.
type Doc struct {
	Width, Height float64 // mm, extent of the bounds over all path points
	Transform     stitch.Affine
	Threads       []stitch.Thread
	Paths         []Path
}

// Bounds returns the bounding box over every point in every path.
func (d *Doc) Bounds() stitch.Bounds {
	var b stitch.Bounds
	for _, p := range d.Paths {
		for _, pt := range p.Points {
			b.Update(pt.X, pt.Y)
		}
	}
	return b
}
