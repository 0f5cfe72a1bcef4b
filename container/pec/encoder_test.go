package pec

import (
	"testing"

	"github.com/ausocean/pes/stitch"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder("TEST")
	if err := enc.AppendThread(5); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(0, 0, stitch.Normal); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(1.0, 0.5, stitch.Normal); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(2.0, 1.0, stitch.Normal); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendThread(12); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(2.0, 1.0, stitch.Jump); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(3.0, 1.5, stitch.Normal); err != nil {
		t.Fatal(err)
	}

	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Label != "TEST" {
		t.Errorf("Label = %q, want TEST", doc.Label)
	}
	if len(doc.Threads) != 2 || doc.Threads[0] != 5 || doc.Threads[1] != 12 {
		t.Errorf("Threads = %v, want [5 12]", doc.Threads)
	}
	if len(doc.Thumbnails) != 3 {
		t.Errorf("Thumbnails count = %d, want 3 (main + 2 threads)", len(doc.Thumbnails))
	}
	for i, th := range doc.Thumbnails {
		if th.Width != ThumbWidth || th.Height != ThumbHeight {
			t.Errorf("thumbnail %d dims = %dx%d, want %dx%d", i, th.Width, th.Height, ThumbWidth, ThumbHeight)
		}
		if len(th.Bits) != ThumbWidth*ThumbHeight/8 {
			t.Errorf("thumbnail %d size = %d bytes, want %d", i, len(th.Bits), ThumbWidth*ThumbHeight/8)
		}
	}
}

func TestSizeMatchesEncode(t *testing.T) {
	enc := NewEncoder("TEST")
	if err := enc.AppendThread(5); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(0, 0, stitch.Normal); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(1.0, 0.5, stitch.Normal); err != nil {
		t.Fatal(err)
	}

	size, err := enc.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if size != len(data) {
		t.Errorf("Size() = %d, want len(Encode()) = %d", size, len(data))
	}
}

func TestEncodeNoThreads(t *testing.T) {
	enc := NewEncoder("EMPTY")
	if _, err := enc.Encode(); err == nil {
		t.Error("expected error encoding with no threads appended")
	}
}

func TestAppendDeltaOverflowRejected(t *testing.T) {
	enc := NewEncoder("X")
	if err := enc.AppendThread(1); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(0, 0, stitch.Normal); err != nil {
		t.Fatal(err)
	}
	if err := enc.Append(300, 0, stitch.Normal); err != ErrDeltaOutOfRange {
		t.Fatalf("got %v, want ErrDeltaOutOfRange", err)
	}
	if len(enc.stitches) != 1 {
		t.Errorf("rejected stitch was recorded: len(stitches) = %d, want 1", len(enc.stitches))
	}
}

func TestEncodeTooManyThreads(t *testing.T) {
	enc := NewEncoder("X")
	var err error
	for i := 0; i < maxThreads; i++ {
		if err = enc.AppendThread(1); err != nil {
			break
		}
	}
	if err != nil {
		t.Fatalf("unexpected error at thread %d: %v", len(enc.threads), err)
	}
	if err := enc.AppendThread(1); err != ErrTooManyThreads {
		t.Errorf("got %v, want ErrTooManyThreads", err)
	}
}
