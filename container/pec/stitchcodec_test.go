package pec

import (
	"testing"

	"github.com/ausocean/pes/stitch"
)

func TestDeltaRoundTrip(t *testing.T) {
	cases := []struct {
		delta int
		kind  stitch.Kind
	}{
		{0, stitch.Normal},
		{63, stitch.Normal},
		{-64, stitch.Normal},
		{64, stitch.Normal},  // forced to 2-byte form
		{-65, stitch.Normal}, // forced to 2-byte form
		{2047, stitch.Jump},
		{-2048, stitch.Trim},
		{0, stitch.Jump},
	}
	for _, c := range cases {
		buf, err := appendDelta(nil, c.delta, c.kind)
		if err != nil {
			t.Fatalf("appendDelta(%d, %v): %v", c.delta, c.kind, err)
		}
		got, dk, n, err := decodeDelta(buf, 0)
		if err != nil {
			t.Fatalf("decodeDelta: %v", err)
		}
		if n != len(buf) {
			t.Errorf("consumed %d, want %d", n, len(buf))
		}
		if got != c.delta {
			t.Errorf("delta = %d, want %d", got, c.delta)
		}
		wantTrim := c.kind == stitch.Trim
		wantJump := c.kind == stitch.Jump
		if dk.trim != wantTrim || dk.jump != wantJump {
			t.Errorf("kind bits = %+v, want trim=%v jump=%v", dk, wantTrim, wantJump)
		}
	}
}

func TestAppendDeltaOneByteForm(t *testing.T) {
	buf, err := appendDelta(nil, 10, stitch.Normal)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 1 {
		t.Fatalf("expected 1-byte form, got %d bytes", len(buf))
	}
}

func TestAppendDeltaOutOfRange(t *testing.T) {
	if _, err := appendDelta(nil, 2048, stitch.Normal); err != ErrDeltaOutOfRange {
		t.Errorf("got %v, want ErrDeltaOutOfRange", err)
	}
	if _, err := appendDelta(nil, -2049, stitch.Normal); err != ErrDeltaOutOfRange {
		t.Errorf("got %v, want ErrDeltaOutOfRange", err)
	}
}

func TestStitchStreamRoundTrip(t *testing.T) {
	stitches := []stitch.Stitch{
		{X: 0, Y: 0, Kind: stitch.Normal},
		{X: 1.5, Y: 2.0, Kind: stitch.Normal},
		{X: 1.5, Y: 2.0, Kind: stitch.Stop},
		{X: 3.0, Y: 2.0, Kind: stitch.Jump},
		{X: 3.2, Y: 2.1, Kind: stitch.Normal},
	}
	stream, err := encodeStitchStream(stitches, [2]int{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	decoded, end, err := decodeStitchStream(stream, 0)
	if err != nil {
		t.Fatal(err)
	}
	if end != len(stream) {
		t.Errorf("end = %d, want %d", end, len(stream))
	}
	if len(decoded) != len(stitches) {
		t.Fatalf("got %d stitches, want %d", len(decoded), len(stitches))
	}
	for i, s := range stitches {
		got := decoded[i]
		if s.Kind == stitch.Stop {
			if got.Kind != stitch.Stop {
				t.Errorf("stitch %d: kind = %v, want Stop", i, got.Kind)
			}
			continue
		}
		if got.Kind != s.Kind {
			t.Errorf("stitch %d: kind = %v, want %v", i, got.Kind, s.Kind)
		}
		if round1(got.X) != round1(s.X) || round1(got.Y) != round1(s.Y) {
			t.Errorf("stitch %d: (%v,%v), want (%v,%v)", i, got.X, got.Y, s.X, s.Y)
		}
	}
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// TestDecodeStitchStreamKindResolutionOrder covers a foreign stream where
// Δx carries the jump bit and Δy carries the trim bit: per read order
// (x then y), the trim bit seen last on Δy must win.
func TestDecodeStitchStreamKindResolutionOrder(t *testing.T) {
	dxBuf, err := appendDelta(nil, 100, stitch.Jump)
	if err != nil {
		t.Fatal(err)
	}
	dyBuf, err := appendDelta(nil, 100, stitch.Trim)
	if err != nil {
		t.Fatal(err)
	}
	stream := append(append([]byte{}, dxBuf...), dyBuf...)
	stream = append(stream, markerTerminator)

	decoded, _, err := decodeStitchStream(stream, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d stitches, want 1", len(decoded))
	}
	if decoded[0].Kind != stitch.Trim {
		t.Errorf("kind = %v, want Trim (y resolves after x)", decoded[0].Kind)
	}
}

func TestDecodeStitchStreamTruncated(t *testing.T) {
	if _, _, err := decodeStitchStream([]byte{0x01}, 0); err != ErrTruncated {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}
