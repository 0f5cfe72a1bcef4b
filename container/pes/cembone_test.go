package pes

import (
	"testing"

	"github.com/ausocean/pes/stitch"
)

func TestCEmbOneRoundTrip(t *testing.T) {
	in := cembone{
		bounds1:      stitch.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5, Valid: true},
		bounds2:      stitch.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5, Valid: true},
		transform:    stitch.Identity(),
		translationX: 0,
		translationY: 0,
		width:        10,
		height:       5,
		blockCount:   3,
	}
	var w writer
	writeCEmbOne(&w, in)

	c := newCursor(w.buf)
	out, err := readCEmbOne(c)
	if err != nil {
		t.Fatalf("readCEmbOne: %v", err)
	}
	if out.bounds1 != in.bounds1 {
		t.Errorf("bounds1 = %+v, want %+v", out.bounds1, in.bounds1)
	}
	if out.blockCount != in.blockCount {
		t.Errorf("blockCount = %d, want %d", out.blockCount, in.blockCount)
	}
	if out.width != in.width || out.height != in.height {
		t.Errorf("size = %vx%v, want %vx%v", out.width, out.height, in.width, in.height)
	}
}

func TestCEmbOneBadMarker(t *testing.T) {
	var w writer
	w.literal("NotCEmbOne")
	if _, err := readCEmbOne(newCursor(w.buf)); err == nil {
		t.Error("expected error for bad CEmbOne marker")
	}
}
