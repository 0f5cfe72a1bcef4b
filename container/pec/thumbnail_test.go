package pec

import "testing"

func TestThumbnailPixelIsLSBFirst(t *testing.T) {
	bits := []byte{0x01, 0x02} // two 8-pixel rows, one bit set each
	if !thumbnailPixel(bits, 8, 0, 0) {
		t.Error("pixel (0,0) should be set (bit 0 of byte 0)")
	}
	for x := 1; x < 8; x++ {
		if thumbnailPixel(bits, 8, x, 0) {
			t.Errorf("pixel (%d,0) should be clear", x)
		}
	}
	if !thumbnailPixel(bits, 8, 1, 1) {
		t.Error("pixel (1,1) should be set (bit 1 of byte 1)")
	}
}

func TestThumbnailPixelOutOfRange(t *testing.T) {
	bits := []byte{0xff}
	if thumbnailPixel(bits, 8, 0, 5) {
		t.Error("out-of-range row should report clear, not panic")
	}
}
