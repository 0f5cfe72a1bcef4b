package transcode

import (
	"testing"

	"github.com/ausocean/pes/container/pes"
	"github.com/ausocean/pes/container/svgemb"
	"github.com/ausocean/pes/stitch"
)

func buildPESFixture(t *testing.T) []byte {
	t.Helper()
	enc := pes.NewEncoder("FIXTURE")
	red := stitch.Thread{Name: "Red", RGB: stitch.RGB{R: 236, G: 0, B: 0}}
	green := stitch.Thread{Name: "Green", RGB: stitch.RGB{R: 150, G: 170, B: 2}}

	if err := enc.AppendThread(red); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(28.5, 7.4); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(30.0, 8.0); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendJumpStitch(35.0, 10.0); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(36.0, 11.0); err != nil {
		t.Fatal(err)
	}

	if err := enc.AppendThread(green); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(40.0, 20.0); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendStitch(49.4, 42.9); err != nil {
		t.Fatal(err)
	}

	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestPESToSVGEmbRoundTrip(t *testing.T) {
	data := buildPESFixture(t)
	doc, err := pes.Decode(data)
	if err != nil {
		t.Fatalf("pes.Decode: %v", err)
	}

	svg, err := PESToSVGEmb(doc)
	if err != nil {
		t.Fatalf("PESToSVGEmb: %v", err)
	}
	if len(svg.Threads) != 2 {
		t.Fatalf("got %d svg threads, want 2", len(svg.Threads))
	}
	if len(svg.Paths) != 2 {
		t.Fatalf("got %d svg paths, want 2", len(svg.Paths))
	}
	if svg.Threads[0].RGB != doc.Threads[0].RGB || svg.Threads[1].RGB != doc.Threads[1].RGB {
		t.Errorf("thread RGB mismatch: got %+v, want %+v", svg.Threads, doc.Threads)
	}
	if len(svg.Paths[0].Points) != 4 {
		t.Fatalf("path 0 has %d points, want 4", len(svg.Paths[0].Points))
	}
	if !svg.Paths[0].Points[2].Jump {
		t.Errorf("path 0 point 2 should be a jump (internal jump stitch), got Jump=false")
	}

	pesBytes, err := SVGEmbToPES(svg)
	if err != nil {
		t.Fatalf("SVGEmbToPES: %v", err)
	}
	doc2, err := pes.Decode(pesBytes)
	if err != nil {
		t.Fatalf("pes.Decode (round-tripped): %v", err)
	}
	if len(doc2.Threads) != len(doc.Threads) {
		t.Fatalf("round-tripped thread count = %d, want %d", len(doc2.Threads), len(doc.Threads))
	}
	for i := range doc.Threads {
		if doc2.Threads[i].RGB != doc.Threads[i].RGB {
			t.Errorf("thread %d RGB = %v, want %v", i, doc2.Threads[i].RGB, doc.Threads[i].RGB)
		}
	}
}

func TestSVGEmbToPESRoundTrip(t *testing.T) {
	enc := svgemb.NewEncoder()
	yellow := stitch.Thread{Name: "Yellow", RGB: stitch.RGB{R: 0xfe, G: 0xca, B: 0x15}}
	olive := stitch.Thread{Name: "Olive", RGB: stitch.RGB{R: 0x96, G: 0xaa, B: 0x02}}

	enc.AppendThread(yellow)
	if err := enc.AppendPoint(28.5, 7.4, true); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendPoint(35.0, 20.0, false); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendPoint(40.0, 25.0, true); err != nil {
		t.Fatal(err)
	}

	enc.AppendThread(olive)
	if err := enc.AppendPoint(45.0, 30.0, true); err != nil {
		t.Fatal(err)
	}
	if err := enc.AppendPoint(49.4, 42.9, false); err != nil {
		t.Fatal(err)
	}

	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := svgemb.Decode(data)
	if err != nil {
		t.Fatalf("svgemb.Decode: %v", err)
	}

	pesBytes, err := SVGEmbToPES(doc)
	if err != nil {
		t.Fatalf("SVGEmbToPES: %v", err)
	}
	if string(pesBytes[:8]) != "#PES0001" {
		t.Errorf("header = %q, want #PES0001", pesBytes[:8])
	}

	pesDoc, err := pes.Decode(pesBytes)
	if err != nil {
		t.Fatalf("pes.Decode: %v", err)
	}
	svg2, err := PESToSVGEmb(pesDoc)
	if err != nil {
		t.Fatalf("PESToSVGEmb: %v", err)
	}
	if len(svg2.Threads) != 2 || svg2.Threads[0].RGB != yellow.RGB || svg2.Threads[1].RGB != olive.RGB {
		t.Errorf("re-transcoded threads = %+v, want [%v %v]", svg2.Threads, yellow.RGB, olive.RGB)
	}
	if len(svg2.Paths) != 2 || len(svg2.Paths[0].Points) != 3 || len(svg2.Paths[1].Points) != 2 {
		t.Fatalf("re-transcoded path shapes = %v, want [3 2]", pathLengths(svg2))
	}
}

func pathLengths(doc *svgemb.Doc) []int {
	out := make([]int, len(doc.Paths))
	for i, p := range doc.Paths {
		out[i] = len(p.Points)
	}
	return out
}

func TestPESToSVGEmbEmptyDocument(t *testing.T) {
	enc := pes.NewEncoder("EMPTY")
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 1, G: 2, B: 3}}); err != nil {
		t.Fatal(err)
	}
	data, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc, err := pes.Decode(data)
	if err != nil {
		t.Fatalf("pes.Decode: %v", err)
	}
	svg, err := PESToSVGEmb(doc)
	if err != nil {
		t.Fatalf("PESToSVGEmb: %v", err)
	}
	if len(svg.Paths) != 0 {
		t.Errorf("got %d paths for a thread with no stitches, want 0", len(svg.Paths))
	}
}
