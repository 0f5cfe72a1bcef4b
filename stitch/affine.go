/*
NAME
  affine.go - PES affine transform, backed by a 3x3 homogeneous matrix.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package stitch

import "gonum.org/v1/gonum/mat"

// Affine is the PES affine transform. Matrix convention (matching the
// original 3x2 row-major layout):
//
//	[ a b ]                                          [ a c e ]
//	[ c d ]  corresponds to the transformation matrix [ b d f ]
//	[ e f ]                                          [ 0 0 1 ]
//
// TX, TY are stored here in millimeters; on the wire they are raw
// tenth-millimeter integers and are scaled at the codec boundary.
type Affine struct {
	A, B, C, D float64
	TX, TY     float64
}

// Identity returns the identity affine transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// IsIdentity reports whether t is the identity transform.
func (t Affine) IsIdentity() bool {
	return t == Identity()
}

// Dense returns the 3x3 homogeneous matrix form of t, suitable for
// composition via gonum's mat.Dense.Mul.
func (t Affine) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.A, t.C, t.TX,
		t.B, t.D, t.TY,
		0, 0, 1,
	})
}

// FromDense builds an Affine from a 3x3 homogeneous matrix produced by
// Dense (or a composition thereof).
func FromDense(m *mat.Dense) Affine {
	return Affine{
		A: m.At(0, 0), C: m.At(0, 1), TX: m.At(0, 2),
		B: m.At(1, 0), D: m.At(1, 1), TY: m.At(1, 2),
	}
}

// Apply maps (x, y) through t.
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.TX, t.B*x + t.D*y + t.TY
}

// Compose returns the transform equivalent to applying t then other, i.e.
// other∘t, computed as a 3x3 matrix product; the rotational part is
// folded in rather than only the translation. No encoder in this module
// calls it.
func (t Affine) Compose(other Affine) Affine {
	var product mat.Dense
	product.Mul(other.Dense(), t.Dense())
	return FromDense(&product)
}

// TransformBounds maps every corner of b through t and returns the
// resulting axis-aligned bounding box, rather than only translating the
// stored corners. The PES and SVG-emb encoders do not call it: their
// bounds are taken from the untransformed stitch coordinates.
func (t Affine) TransformBounds(b Bounds) Bounds {
	if !b.Valid {
		return b
	}
	var out Bounds
	corners := [4][2]float64{
		{b.MinX, b.MinY}, {b.MaxX, b.MinY},
		{b.MinX, b.MaxY}, {b.MaxX, b.MaxY},
	}
	for _, c := range corners {
		x, y := t.Apply(c[0], c[1])
		out.Update(x, y)
	}
	return out
}
