/*
NAME
  cembone.go - CEmbOne geometry region: bounds, affine transform, size.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pes

import "github.com/ausocean/pes/stitch"

// cemboneEndMarker is one of the two u16le values written at the end of
// the CEmbOne region; the meaning is undocumented upstream (spec Open
// Question (a)) and is reproduced verbatim rather than interpreted.
const cemboneEndMarker = 0

// cembone is the parsed CEmbOne region, prior to being folded into a Doc.
type cembone struct {
	bounds1, bounds2     stitch.Bounds
	transform            stitch.Affine
	translationX         int // raw tenth-mm, the two i16le "translations"
	translationY         int
	width, height        float64
	blockCount           uint16
}

func readBoundsRaw(c *cursor) (stitch.Bounds, error) {
	minX, err := c.i16()
	if err != nil {
		return stitch.Bounds{}, err
	}
	minY, err := c.i16()
	if err != nil {
		return stitch.Bounds{}, err
	}
	maxX, err := c.i16()
	if err != nil {
		return stitch.Bounds{}, err
	}
	maxY, err := c.i16()
	if err != nil {
		return stitch.Bounds{}, err
	}
	return stitch.Bounds{
		MinX: stitch.RawToMM(int(minX)), MinY: stitch.RawToMM(int(minY)),
		MaxX: stitch.RawToMM(int(maxX)), MaxY: stitch.RawToMM(int(maxY)),
		Valid: true,
	}, nil
}

func writeBoundsRaw(w *writer, b stitch.Bounds) {
	w.i16(int16(stitch.MMToRaw(b.MinX)))
	w.i16(int16(stitch.MMToRaw(b.MinY)))
	w.i16(int16(stitch.MMToRaw(b.MaxX)))
	w.i16(int16(stitch.MMToRaw(b.MaxY)))
}

func readCEmbOne(c *cursor) (cembone, error) {
	var out cembone
	if err := c.literal("CEmbOne"); err != nil {
		return out, err
	}

	b1, err := readBoundsRaw(c)
	if err != nil {
		return out, err
	}
	b2, err := readBoundsRaw(c)
	if err != nil {
		return out, err
	}
	out.bounds1, out.bounds2 = b1, b2

	var a [6]float32
	for i := range a {
		a[i], err = c.f32()
		if err != nil {
			return out, err
		}
	}
	out.transform = stitch.Affine{
		A: float64(a[0]), B: float64(a[1]), C: float64(a[2]), D: float64(a[3]),
		TX: stitch.RawToMM(int(a[4])), TY: stitch.RawToMM(int(a[5])),
	}

	if _, err := c.u16(); err != nil { // constant
		return out, err
	}
	tx, err := c.i16()
	if err != nil {
		return out, err
	}
	ty, err := c.i16()
	if err != nil {
		return out, err
	}
	out.translationX, out.translationY = int(tx), int(ty)

	width, err := c.u16()
	if err != nil {
		return out, err
	}
	height, err := c.u16()
	if err != nil {
		return out, err
	}
	out.width, out.height = stitch.RawToMM(int(width)), stitch.RawToMM(int(height))

	if _, err := c.bytes(8); err != nil {
		return out, err
	}
	out.blockCount, err = c.u16()
	if err != nil {
		return out, err
	}
	if _, err := c.u16(); err != nil { // end marker 1
		return out, err
	}
	if _, err := c.u16(); err != nil { // end marker 2
		return out, err
	}
	return out, nil
}

func writeCEmbOne(w *writer, cb cembone) {
	w.literal("CEmbOne")
	writeBoundsRaw(w, cb.bounds1)
	writeBoundsRaw(w, cb.bounds2)
	w.f32(float32(cb.transform.A))
	w.f32(float32(cb.transform.B))
	w.f32(float32(cb.transform.C))
	w.f32(float32(cb.transform.D))
	w.f32(float32(stitch.MMToRaw(cb.transform.TX)))
	w.f32(float32(stitch.MMToRaw(cb.transform.TY)))
	w.u16(1) // constant
	w.i16(int16(cb.translationX))
	w.i16(int16(cb.translationY))
	w.u16(uint16(stitch.MMToRaw(cb.width)))
	w.u16(uint16(stitch.MMToRaw(cb.height)))
	w.zeros(8)
	w.u16(cb.blockCount)
	w.u16(cemboneEndMarker)
	w.u16(cemboneEndMarker)
}
