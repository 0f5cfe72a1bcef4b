package svgemb

import "testing"

func TestParseRGBInvalid(t *testing.T) {
	if _, err := parseRGB("red"); err != ErrBadColor {
		t.Errorf("got %v, want ErrBadColor", err)
	}
	if _, err := parseRGB("#zzzzzz"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestParsePathDataGrammar(t *testing.T) {
	points, err := parsePathData("M0 0 L1 1 L2 2")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[2].X != 2 || points[2].Y != 2 {
		t.Errorf("points[2] = %v, want {2 2}", points[2])
	}
	if !points[0].Jump || points[1].Jump || points[2].Jump {
		t.Errorf("points jump flags = %v,%v,%v, want true,false,false", points[0].Jump, points[1].Jump, points[2].Jump)
	}
}

func TestParsePathDataRejectsBadGrammar(t *testing.T) {
	if _, err := parsePathData("Q0 0"); err != ErrBadPathData {
		t.Errorf("got %v, want ErrBadPathData", err)
	}
}

func TestDecodeMissingStroke(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?><svg><path d="M0 0 L1 1"/></svg>`)
	if _, err := Decode(doc); err != ErrNoStroke {
		t.Errorf("got %v, want ErrNoStroke", err)
	}
}
