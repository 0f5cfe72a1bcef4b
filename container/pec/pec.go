/*
NAME
  pec.go - PEC embroidery stitch-stream container: layout constants and
  the shared document type.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

// Package pec decodes and encodes Brother PEC stitch-stream containers:
// the fixed-layout thread palette, label, monochrome thumbnails and the
// variable-length delta-coded stitch list embedded in every PES file.
package pec

import "github.com/ausocean/pes/stitch"

// Layout offsets, in bytes from the start of a PEC payload.
const (
	LabelOffset         = 0
	LabelSize           = 19
	UnknownBlockOffset  = 19
	ThumbWidthOffset    = 34
	ThumbHeightOffset   = 35
	ThreadCountOffset   = 48
	PaletteOffset       = 49
	BlockBaseOffset     = 512
	ThumbOffsetOffset   = 514 // u16le, relative to BlockBaseOffset
	SizeBlockOffset     = 518
	StitchStreamOffset  = 532
)

// Fixed thumbnail dimensions written by the encoder.
const (
	ThumbWidth      = 48
	ThumbHeight     = 38
	thumbWidthByte  = ThumbWidth / 8 // stored value at ThumbWidthOffset
	thumbHeightByte = ThumbHeight
)

// Size-block constants written at SizeBlockOffset+4..+11 (documented,
// opaque fields preserved from the reference encoder).
var sizeBlockConstants = [4]uint16{0x01E0, 0x01B0, 0x0000, 0x0000}

// Stop and terminator markers in the stitch stream.
const (
	markerStop       = 0xFE
	markerTerminator = 0xFF
)

// Stitch-delta form bits, set on the high byte of the 2-byte form.
const (
	bitExtended = 0x80
	bitTrim     = 0x20
	bitJump     = 0x10
)

// Thumbnail is one monochrome raster: width x height pixels, packed 8 per
// byte, bit 0 of each byte the leftmost pixel of its column group.
type Thumbnail struct {
	Width, Height int
	Bits          []byte
}

// Pixel reports whether the pixel at (x, y) is set.
func (t Thumbnail) Pixel(x, y int) bool {
	return thumbnailPixel(t.Bits, t.Width, x, y)
}

// ThumbnailPixel reports whether the pixel at (x, y) of the index'th
// thumbnail (0 is the main thumbnail) is set.
func (d *Doc) ThumbnailPixel(index, x, y int) bool {
	if index < 0 || index >= len(d.Thumbnails) {
		return false
	}
	return d.Thumbnails[index].Pixel(x, y)
}

// Doc is a fully decoded (or not-yet-encoded) PEC document.
type Doc struct {
	Label      string
	Threads    []int // 1-based palette indices, document order
	Stitches   []stitch.Stitch
	Bounds     stitch.Bounds
	Thumbnails []Thumbnail // index 0 is the "main" thumbnail; 1..N per thread
}
