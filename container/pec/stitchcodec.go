/*
NAME
  stitchcodec.go - variable-length signed delta coding for PEC stitches.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pec

import (
	"github.com/pkg/errors"

	"github.com/ausocean/pes/stitch"
)

// ErrDeltaOutOfRange is returned when an append's coordinate delta does
// not fit in the signed 12-bit range the wire format allows.
var ErrDeltaOutOfRange = errors.New("pec: stitch delta out of range")

// ErrTruncated is returned when the stitch stream ends before a
// terminator marker is seen.
var ErrTruncated = errors.New("pec: truncated stitch stream")

// deltaKind is the per-component kind signalled by the 2-byte delta form;
// a 1-byte delta never carries Trim or Jump.
type deltaKind struct {
	trim, jump bool
}

// decodeDelta reads one signed delta starting at data[pos], returning the
// delta, its kind bits and the number of bytes consumed.
func decodeDelta(data []byte, pos int) (delta int, dk deltaKind, consumed int, err error) {
	if pos >= len(data) {
		return 0, deltaKind{}, 0, ErrTruncated
	}
	u := data[pos]
	if u&bitExtended == 0 {
		v := int(u)
		if v >= 0x40 {
			v -= 0x80
		}
		return v, deltaKind{}, 1, nil
	}
	if pos+1 >= len(data) {
		return 0, deltaKind{}, 0, ErrTruncated
	}
	hi := int(u & 0x0F)
	lo := int(data[pos+1])
	v := hi<<8 | lo
	if v&0x0800 != 0 {
		v -= 0x1000
	}
	dk = deltaKind{trim: u&bitTrim != 0, jump: u&bitJump != 0}
	return v, dk, 2, nil
}

// appendDelta appends the wire encoding of delta (kind k) to buf.
func appendDelta(buf []byte, delta int, k stitch.Kind) ([]byte, error) {
	if delta < stitch.MinRawDelta || delta > stitch.MaxRawDelta {
		return nil, ErrDeltaOutOfRange
	}
	if k == stitch.Normal && delta >= -64 && delta <= 63 {
		v := delta
		if v < 0 {
			v += 0x80
		}
		return append(buf, byte(v)), nil
	}
	var kindBits byte
	switch k {
	case stitch.Trim:
		kindBits = bitTrim
	case stitch.Jump:
		kindBits = bitJump
	}
	v := delta
	if v < 0 {
		v += 0x1000
	}
	hi := bitExtended | kindBits | byte((v>>8)&0x0F)
	lo := byte(v & 0xFF)
	return append(buf, hi, lo), nil
}

// decodeStitchStream decodes the stitch list starting at data[pos],
// reading until a terminator marker. It returns the stitches (in mm) and
// the offset one past the terminator.
func decodeStitchStream(data []byte, pos int) ([]stitch.Stitch, int, error) {
	var out []stitch.Stitch
	x, y := 0, 0
	for {
		if pos >= len(data) {
			return nil, 0, ErrTruncated
		}
		switch data[pos] {
		case markerTerminator:
			return out, pos + 1, nil
		case markerStop:
			if pos+4 > len(data) {
				return nil, 0, ErrTruncated
			}
			pos += 4
			out = append(out, stitch.Stitch{X: stitch.RawToMM(x), Y: stitch.RawToMM(y), Kind: stitch.Stop})
			continue
		}
		dx, dkx, n, err := decodeDelta(data, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += n
		dy, dky, n, err := decodeDelta(data, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += n
		x += dx
		y += dy
		// Kind bits resolve per coordinate in read order (x then y):
		// whichever of x or y carries a kind bit last wins, rather than
		// jump always beating trim.
		kind := stitch.Normal
		if dkx.trim {
			kind = stitch.Trim
		}
		if dkx.jump {
			kind = stitch.Jump
		}
		if dky.trim {
			kind = stitch.Trim
		}
		if dky.jump {
			kind = stitch.Jump
		}
		out = append(out, stitch.Stitch{X: stitch.RawToMM(x), Y: stitch.RawToMM(y), Kind: kind})
	}
}

// encodeStitchStream encodes stitches into the wire stitch-list form,
// seeded from seed (the encoder's minimum bounds corner) and appends the
// terminator. stopCounter tracks the alternating 2/1 Stop byte purely for
// write fidelity; readers must not depend on it.
func encodeStitchStream(stitches []stitch.Stitch, seed [2]int) ([]byte, error) {
	var buf []byte
	x, y := seed[0], seed[1]
	stopCounter := byte(2)
	for _, s := range stitches {
		if s.Kind == stitch.Stop {
			buf = append(buf, markerStop, stopCounter, 0, 0)
			if stopCounter == 2 {
				stopCounter = 1
			} else {
				stopCounter = 2
			}
			continue
		}
		rx, ry := stitch.MMToRaw(s.X), stitch.MMToRaw(s.Y)
		dx, dy := rx-x, ry-y
		x, y = rx, ry
		var err error
		buf, err = appendDelta(buf, dx, s.Kind)
		if err != nil {
			return nil, err
		}
		buf, err = appendDelta(buf, dy, s.Kind)
		if err != nil {
			return nil, err
		}
	}
	buf = append(buf, markerTerminator)
	return buf, nil
}
