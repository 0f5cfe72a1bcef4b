package pes

import "testing"

func TestCSewSegRoundTrip(t *testing.T) {
	blocks := []Block{
		{Type: BlockNormal, ID: 0, Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 5}}},
		{Type: BlockJump, ID: 1, Points: []Point{{X: 10, Y: 5}, {X: 30, Y: 10}}},
		{Type: BlockNormal, ID: 2, Points: []Point{{X: 30, Y: 10}, {X: 35, Y: 12}}},
	}
	changes := []rawThreadChange{{blockIndex: 0, value: 0}, {blockIndex: 2, value: 1}}

	var w writer
	writeCSewSeg(&w, blocks, changes)

	gotBlocks, gotChanges, err := readCSewSeg(newCursor(w.buf))
	if err != nil {
		t.Fatalf("readCSewSeg: %v", err)
	}
	if len(gotBlocks) != len(blocks) {
		t.Fatalf("got %d blocks, want %d", len(gotBlocks), len(blocks))
	}
	for i, b := range blocks {
		if gotBlocks[i].Type != b.Type || len(gotBlocks[i].Points) != len(b.Points) {
			t.Errorf("block %d = %+v, want %+v", i, gotBlocks[i], b)
		}
	}
	if len(gotChanges) != len(changes) {
		t.Fatalf("got %d changes, want %d", len(gotChanges), len(changes))
	}
	for i, c := range changes {
		if gotChanges[i] != c {
			t.Errorf("change %d = %+v, want %+v", i, gotChanges[i], c)
		}
	}
}

func TestCSewSegEmptyRoundTrip(t *testing.T) {
	var w writer
	writeCSewSeg(&w, nil, nil)

	gotBlocks, gotChanges, err := readCSewSeg(newCursor(w.buf))
	if err != nil {
		t.Fatalf("readCSewSeg: %v", err)
	}
	if len(gotBlocks) != 1 || len(gotBlocks[0].Points) != 0 {
		t.Errorf("got blocks %+v, want one zero-length terminating block", gotBlocks)
	}
	if len(gotChanges) != 0 {
		t.Errorf("got %d changes, want 0", len(gotChanges))
	}
}

func TestCSewSegBadMarker(t *testing.T) {
	var w writer
	w.literal("NotCSewSeg")
	if _, _, err := readCSewSeg(newCursor(w.buf)); err == nil {
		t.Error("expected error for bad CSewSeg marker")
	}
}
