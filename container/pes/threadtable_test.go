package pes

import (
	"testing"

	"github.com/ausocean/pes/stitch"
)

func TestThreadTableRoundTrip(t *testing.T) {
	threads := []stitch.Thread{
		{ID: "123", Code: "45", Name: "Custom Red", Type: "A", RGB: stitch.RGB{R: 200, G: 10, B: 10}},
		{ID: "456", Code: "67", Name: "Custom Blue", Type: "C", RGB: stitch.RGB{R: 10, G: 10, B: 200}},
	}
	var w writer
	writeThreadTable(&w, threads)

	got, err := readThreadTable(newCursor(w.buf))
	if err != nil {
		t.Fatalf("readThreadTable: %v", err)
	}
	if len(got) != len(threads) {
		t.Fatalf("got %d threads, want %d", len(got), len(threads))
	}
	for i, want := range threads {
		if got[i].Name != want.Name || got[i].RGB != want.RGB || got[i].Type != want.Type {
			t.Errorf("thread %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestThreadTypeByteRoundTrip(t *testing.T) {
	for b := 0xA; b <= 0xF; b++ {
		letter := stitch.ThreadTypeLetter(b)
		if got := threadTypeByte(letter); got != byte(b) {
			t.Errorf("threadTypeByte(%q) = %#x, want %#x", letter, got, b)
		}
	}
}
