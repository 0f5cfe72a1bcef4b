package stitch

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// SquaredDistance returns the squared Euclidean distance between u and v
// in RGB space, used by nearest-neighbor palette matching.
func (u RGB) SquaredDistance(v RGB) int {
	dr := int(v.R) - int(u.R)
	dg := int(v.G) - int(u.G)
	db := int(v.B) - int(u.B)
	return dr*dr + dg*dg + db*db
}

// Thread describes a single embroidery thread: its document-relative
// index, palette id/code strings, a human name, a type tag (letters A-F,
// or "-" if out of range) and its RGB color. Palette threads and custom
// (SVG/PES thread-table) threads share this shape.
type Thread struct {
	Index int
	ID    string
	Code  string
	Name  string
	Type  string
	RGB   RGB
}

// Undefined is the neutral fallback thread returned whenever a lookup by
// index or palette position fails, matching the original library's
// pec_undefined_thread().
func Undefined() Thread {
	return Thread{
		Index: 0,
		ID:    "00",
		Code:  "000",
		Name:  "Undefined",
		Type:  "A",
		RGB:   RGB{220, 220, 220},
	}
}

// ThreadTypeLetter maps a PES thread-table type byte (0xA..0xF) to its
// letter tag, or "-" if out of range.
func ThreadTypeLetter(b int) string {
	if b < 0xA || b > 0xF {
		return "-"
	}
	return string(rune('A' + (b - 0xA)))
}
