/*
NAME
  encoder.go - PEC container encoding.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pec

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ausocean/pes/stitch"
)

// maxThreads is the largest thread count the 1-byte thread_count-1 field
// can represent.
const maxThreads = 256

// ErrTooManyThreads is returned when Encoder.AppendThread would overflow
// the 1-byte thread_count-1 field.
var ErrTooManyThreads = errors.New("pec: too many threads")

// growStep/growCap mirror the reference encoder's growable stitch list:
// double up to growCap entries, then grow by growStep per step.
const (
	growStep = 10000
	growCap  = 10000
)

// Encoder builds a PEC document incrementally. The zero value is not
// ready for use; call NewEncoder.
type Encoder struct {
	label    string
	threads  []int
	stitches []stitch.Stitch
	bounds   stitch.Bounds
}

// NewEncoder returns an Encoder with the given 19-byte label (truncated
// or space-padded on Encode).
func NewEncoder(label string) *Encoder {
	return &Encoder{label: label}
}

// AppendThread records a palette thread index for the next color run,
// synthesizing the Stop stitch that separates it from the previous run.
func (e *Encoder) AppendThread(paletteIndex int) error {
	if len(e.threads) >= maxThreads {
		return ErrTooManyThreads
	}
	if len(e.threads) > 0 {
		e.appendStop()
	}
	e.threads = append(e.threads, paletteIndex)
	return nil
}

func (e *Encoder) appendStop() {
	var last stitch.Stitch
	if len(e.stitches) > 0 {
		last = e.stitches[len(e.stitches)-1]
	}
	e.stitches = e.grow(stitch.Stitch{X: last.X, Y: last.Y, Kind: stitch.Stop})
}

// Append adds a stitch of the given kind at (x, y) millimeters. If the
// raw delta from the last appended coordinate (ignoring Stop stitches,
// which carry no coordinates) would exceed the signed 12-bit range, the
// stitch is rejected and not recorded.
func (e *Encoder) Append(x, y float64, kind stitch.Kind) error {
	rx, ry := stitch.MMToRaw(x), stitch.MMToRaw(y)
	lastX, lastY := e.lastRaw()
	dx, dy := rx-lastX, ry-lastY
	if dx < stitch.MinRawDelta || dx > stitch.MaxRawDelta || dy < stitch.MinRawDelta || dy > stitch.MaxRawDelta {
		return ErrDeltaOutOfRange
	}
	e.bounds.Update(x, y)
	e.stitches = e.grow(stitch.Stitch{X: x, Y: y, Kind: kind})
	return nil
}

// lastRaw returns the raw coordinate of the most recently appended
// stitch (0,0 if none yet appended).
func (e *Encoder) lastRaw() (int, int) {
	for i := len(e.stitches) - 1; i >= 0; i-- {
		if e.stitches[i].Kind != stitch.Stop {
			return stitch.MMToRaw(e.stitches[i].X), stitch.MMToRaw(e.stitches[i].Y)
		}
	}
	return 0, 0
}

// grow appends s to the stitch list, following the reference encoder's
// doubling-then-linear growth policy (relevant only to a preallocating
// implementation; here it simply documents the same cadence).
func (e *Encoder) grow(s stitch.Stitch) []stitch.Stitch {
	return append(e.stitches, s)
}

// Encode renders the accumulated document as a full PEC payload,
// including rasterized thumbnails.
func (e *Encoder) Encode() ([]byte, error) {
	if len(e.threads) == 0 {
		return nil, errors.New("pec: no threads appended")
	}

	buf := make([]byte, StitchStreamOffset)
	copy(buf[LabelOffset:LabelOffset+LabelSize], padLabel(e.label))
	buf[ThumbWidthOffset] = thumbWidthByte
	buf[ThumbHeightOffset] = thumbHeightByte
	buf[ThreadCountOffset] = byte(len(e.threads) - 1)
	for i, idx := range e.threads {
		buf[PaletteOffset+i] = byte(idx)
	}

	binary.LittleEndian.PutUint16(buf[SizeBlockOffset:], uint16(ThumbWidth))
	binary.LittleEndian.PutUint16(buf[SizeBlockOffset+2:], uint16(ThumbHeight))
	for i, c := range sizeBlockConstants {
		binary.LittleEndian.PutUint16(buf[SizeBlockOffset+4+2*i:], c)
	}

	var seed [2]int
	if e.bounds.Valid {
		seed = [2]int{stitch.MMToRaw(e.bounds.MinX), stitch.MMToRaw(e.bounds.MinY)}
	}
	stream, err := encodeStitchStream(e.stitches, seed)
	if err != nil {
		return nil, err
	}
	buf = append(buf, stream...)

	thumbOffset := uint16(len(buf) - BlockBaseOffset)
	binary.LittleEndian.PutUint16(buf[ThumbOffsetOffset:], thumbOffset)

	thumbs := rasterizeAll(e.stitches, ThumbWidth, ThumbHeight)
	for _, t := range thumbs {
		buf = append(buf, t.Bits...)
	}

	return buf, nil
}

// Size returns the exact byte length Encode would produce for the
// document as it stands, without retaining the encoded bytes. Size is
// pure with respect to encoder state: the encoder remains usable for
// further appends or another size probe afterward.
func (e *Encoder) Size() (int, error) {
	data, err := e.Encode()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func padLabel(label string) []byte {
	out := make([]byte, LabelSize)
	for i := range out {
		out[i] = ' '
	}
	copy(out, label)
	return out
}
