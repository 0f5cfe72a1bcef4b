/*
NAME
  thumbnail.go - monochrome PEC thumbnail rasterization and bit packing.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pec

import (
	"bytes"

	"github.com/icza/bitio"
	"gocv.io/x/gocv"

	"github.com/ausocean/pes/stitch"
)

// thumbMargin is the border width, in pixels, left around the fitted
// plot on every side.
const thumbMargin = 5

// pack converts a black/white gocv.Mat (CV_8UC1, nonzero meaning "on")
// into the PEC thumbnail's packed-bit form: one bit per pixel, row-major,
// bit 0 of each byte the leftmost pixel of its 8-pixel group (LSB-first,
// matching src/pec-encoder.c's image[r][c/8] |= 1 << (c%8)).
func pack(mat *gocv.Mat, width, height int) []byte {
	rowBytes := (width + 7) / 8
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for y := 0; y < height; y++ {
		for xByte := 0; xByte < rowBytes; xByte++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				x := xByte*8 + bit
				if x < width && mat.GetUCharAt(y, x) != 0 {
					b |= 1 << uint(bit)
				}
			}
			if err := w.WriteByte(b); err != nil {
				break
			}
		}
	}
	w.Close()
	return buf.Bytes()
}

// thumbnailPixel reports whether the pixel at (x, y) is set in a packed
// PEC thumbnail of the given width, per the same LSB-first layout pack
// produces.
func thumbnailPixel(bits []byte, width, x, y int) bool {
	rowBytes := (width + 7) / 8
	idx := y*rowBytes + x/8
	if idx < 0 || idx >= len(bits) {
		return false
	}
	return bits[idx]&(1<<uint(x%8)) != 0
}

// drawFrame draws the decorative thumbnail border onto mat: a rectangle
// outline with corners pulled in to (3,2)/(2,3) and their three mirrors,
// giving the frame rounded corners.
func drawFrame(mat *gocv.Mat, width, height int) {
	white := gocv.NewScalar(255, 0, 0, 0)
	gocv.Line(mat, pt(0, 2), pt(0, height-3), white, 1)
	gocv.Line(mat, pt(width-1, 2), pt(width-1, height-3), white, 1)
	gocv.Line(mat, pt(2, 0), pt(width-3, 0), white, 1)
	gocv.Line(mat, pt(2, height-1), pt(width-3, height-1), white, 1)

	mat.SetUCharAt(2, 3, 255)
	mat.SetUCharAt(3, 2, 255)
	mat.SetUCharAt(2, width-4, 255)
	mat.SetUCharAt(3, width-3, 255)
	mat.SetUCharAt(height-3, 3, 255)
	mat.SetUCharAt(height-4, 2, 255)
	mat.SetUCharAt(height-3, width-4, 255)
	mat.SetUCharAt(height-4, width-3, 255)
}

func pt(x, y int) gocv.Point {
	return gocv.Point{X: x, Y: y}
}

// rasterize fits run's stitches into a width x height canvas (margin
// thumbMargin on every side, uniform scale) and draws one interpolated
// line segment per pair of consecutive Normal, Jump or Trim stitches
// (a Stop carries no coordinates and never reaches here: rasterizeAll
// splits runs at Stop boundaries before calling rasterize).
func rasterize(run []stitch.Stitch, width, height int) Thumbnail {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8U)
	defer mat.Close()
	mat.SetTo(gocv.NewScalar(0, 0, 0, 0))
	drawFrame(&mat, width, height)

	var bounds stitch.Bounds
	for _, s := range run {
		if s.Kind != stitch.Stop {
			bounds.Update(s.X, s.Y)
		}
	}
	if bounds.Valid {
		fitW := float64(width - 2*thumbMargin)
		fitH := float64(height - 2*thumbMargin)
		scale := fitW / bounds.Width()
		if bounds.Width() == 0 || (bounds.Height() > 0 && fitH/bounds.Height() < scale) {
			scale = fitH / bounds.Height()
		}
		if bounds.Width() == 0 && bounds.Height() == 0 {
			scale = 1
		}
		toPixel := func(x, y float64) (int, int) {
			px := thumbMargin + int(round((x-bounds.MinX)*scale))
			py := thumbMargin + int(round((bounds.MaxY-y)*scale))
			return px, py
		}
		white := gocv.NewScalar(255, 0, 0, 0)
		var prev stitch.Stitch
		havePrev := false
		for _, s := range run {
			if s.Kind == stitch.Stop {
				havePrev = false
				continue
			}
			if havePrev {
				for i := 0; i <= 100; i++ {
					t := float64(i) / 100
					ix := prev.X + t*(s.X-prev.X)
					iy := prev.Y + t*(s.Y-prev.Y)
					px, py := toPixel(ix, iy)
					if px >= 0 && px < width && py >= 0 && py < height {
						mat.SetUCharAt(py, px, 255)
					}
				}
				x0, y0 := toPixel(prev.X, prev.Y)
				x1, y1 := toPixel(s.X, s.Y)
				gocv.Line(&mat, pt(x0, y0), pt(x1, y1), white, 1)
			}
			prev = s
			havePrev = true
		}
	}

	return Thumbnail{Width: width, Height: height, Bits: pack(&mat, width, height)}
}

func round(f float64) float64 {
	if f >= 0 {
		return float64(int(f + 0.5))
	}
	return float64(int(f - 0.5))
}

// rasterizeAll builds the main thumbnail (all Normal/Jump/Trim stitches)
// followed by one thumbnail per thread run, where a run is delimited by
// Stop stitches. A run with no stitches still gets a (frame-only)
// thumbnail, so the result always holds one thumbnail more than there
// are Stop-separated runs.
func rasterizeAll(stitches []stitch.Stitch, width, height int) []Thumbnail {
	thumbs := []Thumbnail{rasterize(stitches, width, height)}
	var run []stitch.Stitch
	flush := func() {
		thumbs = append(thumbs, rasterize(run, width, height))
		run = nil
	}
	for _, s := range stitches {
		if s.Kind == stitch.Stop {
			flush()
			continue
		}
		run = append(run, s)
	}
	flush()
	return thumbs
}
