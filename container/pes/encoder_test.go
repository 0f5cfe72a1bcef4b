package pes

import (
	"testing"

	"github.com/ausocean/pes/stitch"
)

func TestV1EncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder("ROUNDTRIP")
	red := stitch.Thread{ID: "5", Code: "000", Name: "Red", Type: "A", RGB: stitch.RGB{R: 236, G: 0, B: 0}}
	blue := stitch.Thread{ID: "2", Code: "000", Name: "Blue", Type: "A", RGB: stitch.RGB{R: 15, G: 117, B: 255}}

	if err := enc.AppendThread(red); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendJumpStitch(3, 1); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(3.5, 1.2); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendThread(blue); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(10, 0); err != nil {
		t.Fatal(err)
	}

	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data[:4]) != Magic {
		t.Fatalf("missing magic, got %q", data[:4])
	}
	if string(data[4:8]) != "0001" {
		t.Fatalf("version tag = %q, want 0001", data[4:8])
	}

	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Version != V1 {
		t.Errorf("Version = %v, want V1", doc.Version)
	}
	if len(doc.Threads) != 2 {
		t.Fatalf("len(Threads) = %d, want 2", len(doc.Threads))
	}
	if len(doc.PEC) == 0 {
		t.Error("embedded PEC payload is empty")
	}

	var got []stitch.Stitch
	var threads []stitch.Thread
	doc.Walk(func(s stitch.Stitch, th stitch.Thread) bool {
		got = append(got, s)
		threads = append(threads, th)
		return true
	})
	if len(got) == 0 {
		t.Fatal("Walk produced no stitches")
	}
	if threads[0].RGB != red.RGB {
		t.Errorf("first stitch thread RGB = %v, want %v", threads[0].RGB, red.RGB)
	}
	if threads[len(threads)-1].RGB != blue.RGB {
		t.Errorf("last stitch thread RGB = %v, want %v", threads[len(threads)-1].RGB, blue.RGB)
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	enc := NewEncoder("EMPTY")
	if _, err := enc.Encode(); err == nil {
		t.Error("expected an error encoding with no threads appended")
	}
}

func TestSizeMatchesEncode(t *testing.T) {
	enc := NewEncoder("SIZE")
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 1, G: 2, B: 3}}); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(5, 5); err != nil {
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

func TestEncodeVersionStubsUnsupported(t *testing.T) {
	enc := NewEncoder("STUB")
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 1, G: 2, B: 3}}); err != nil {
		t.Fatal(err)
	}

	for name, fn := range map[string]func() error{
		"Encode4": func() error { _, err := enc.Encode4(); return err },
		"Encode5": func() error { _, err := enc.Encode5(); return err },
		"Encode6": func() error { _, err := enc.Encode6(); return err },
		"Size4":   func() error { _, err := enc.Size4(); return err },
		"Size5":   func() error { _, err := enc.Size5(); return err },
		"Size6":   func() error { _, err := enc.Size6(); return err },
	} {
		if err := fn(); err != ErrUnsupportedEncodeVersion {
			t.Errorf("%s: got %v, want ErrUnsupportedEncodeVersion", name, err)
		}
	}
}
