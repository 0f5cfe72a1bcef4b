/*
NAME
  encoder.go - PES v1 encoding.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pes

import (
	"github.com/pkg/errors"

	"github.com/ausocean/pes/container/pec"
	"github.com/ausocean/pes/palette"
	"github.com/ausocean/pes/stitch"
)

// ErrUnsupportedEncodeVersion is returned by the Encode4/5/6 and Size4/5/6
// stubs; Encode and Size write v1 only.
var ErrUnsupportedEncodeVersion = errors.New("pes: only v1 encoding is supported")

// v1HeaderPassthrough is the passthrough byte count between pec_offset
// and CEmbOne for a v1 file (see the Version dispatch table).
const v1HeaderPassthrough = 10

// Encoder builds a PES v1 document incrementally via AppendThread,
// AppendStitch and AppendJumpStitch, driving a companion pec.Encoder the
// same way the reference encoder does.
type Encoder struct {
	transform stitch.Affine
	threads   []stitch.Thread
	blocks    []Block
	changes   []rawThreadChange
	pec       *pec.Encoder

	open            []Point // points of the in-progress Normal block
	blockIndex      int
	pendingThreadJump bool
	last            Point
	haveLast        bool
}

// NewEncoder returns an empty v1 Encoder. label is the companion PEC
// document's 19-byte label.
func NewEncoder(label string) *Encoder {
	return &Encoder{
		transform: stitch.Identity(),
		pec:       pec.NewEncoder(label),
	}
}

// SetTransform sets the affine transform recorded in CEmbOne.
func (e *Encoder) SetTransform(t stitch.Affine) { e.transform = t }

// AppendThread starts a new color run with thread t. All but the first
// call synthesizes the block boundary and the companion PEC Stop.
func (e *Encoder) AppendThread(t stitch.Thread) error {
	paletteIndex := palette.Nearest(t.RGB, nil)
	if len(e.threads) > 0 {
		e.closeOpenBlock()
	}
	if err := e.pec.AppendThread(paletteIndex); err != nil {
		return err
	}
	if len(e.threads) > 0 {
		e.pendingThreadJump = true
	}
	e.changes = append(e.changes, rawThreadChange{blockIndex: e.blockIndex, value: paletteIndex})
	e.threads = append(e.threads, t)
	return nil
}

// closeOpenBlock flushes the in-progress Normal block, if non-empty.
func (e *Encoder) closeOpenBlock() {
	if len(e.open) == 0 {
		return
	}
	e.blocks = append(e.blocks, Block{Type: BlockNormal, ID: uint16(len(e.blocks)), Points: e.open})
	e.open = nil
	e.blockIndex++
}

// AppendStitch appends an ordinary sewn stitch at (x, y) millimeters.
func (e *Encoder) AppendStitch(x, y float64) error {
	p := Point{X: stitch.MMToRaw(x), Y: stitch.MMToRaw(y)}
	e.open = append(e.open, p)
	kind := stitch.Normal
	if e.pendingThreadJump {
		kind = stitch.Jump
		e.pendingThreadJump = false
	}
	if err := e.pec.Append(x, y, kind); err != nil {
		return err
	}
	e.last, e.haveLast = p, true
	return nil
}

// AppendJumpStitch appends a needle move with no stitching to (x, y),
// bracketed as its own 2-point Jump block, then opens a fresh Normal
// block starting at the same point.
func (e *Encoder) AppendJumpStitch(x, y float64) error {
	p := Point{X: stitch.MMToRaw(x), Y: stitch.MMToRaw(y)}
	e.closeOpenBlock()
	from := e.last
	e.blocks = append(e.blocks, Block{Type: BlockJump, ID: uint16(len(e.blocks)), Points: []Point{from, p}})
	e.blockIndex++

	kind := stitch.Trim
	if e.pendingThreadJump {
		kind = stitch.Jump
		e.pendingThreadJump = false
	}
	if err := e.pec.Append(x, y, kind); err != nil {
		return err
	}

	e.open = append(e.open, p)
	e.last, e.haveLast = p, true
	return nil
}

// Encode renders the accumulated document as a full PES v1 file.
func (e *Encoder) Encode() ([]byte, error) {
	e.closeOpenBlock()

	pecBytes, err := e.pec.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "embedded PEC")
	}

	var bounds stitch.Bounds
	for _, b := range e.blocks {
		for _, p := range b.Points {
			bounds.Update(stitch.RawToMM(p.X), stitch.RawToMM(p.Y))
		}
	}

	cb := cembone{
		bounds1: bounds,
		bounds2: bounds,
		transform: stitch.Affine{
			A: e.transform.A, B: e.transform.B, C: e.transform.C, D: e.transform.D,
			TX: e.transform.TX, TY: e.transform.TY,
		},
		translationX: stitch.MMToRaw(e.transform.TX),
		translationY: stitch.MMToRaw(e.transform.TY),
		width:        bounds.Width(),
		height:       bounds.Height(),
		blockCount:   uint16(len(e.blocks)),
	}

	var cembodyWriter writer
	writeCEmbOne(&cembodyWriter, cb)
	writeCSewSeg(&cembodyWriter, e.blocks, e.changes)

	headerLen := 8 + 4 + v1HeaderPassthrough
	pecOffset := uint32(headerLen + len(cembodyWriter.buf))

	var w writer
	w.bytes([]byte(Magic))
	w.bytes([]byte(tagByVersion[V1]))
	w.u32(pecOffset)
	w.zeros(v1HeaderPassthrough)
	w.bytes(cembodyWriter.buf)
	w.bytes(pecBytes)

	return w.buf, nil
}

// Size returns the exact byte length Encode would produce for the
// document as it stands, without retaining the encoded bytes. Size is
// pure with respect to encoder state: the encoder remains usable for
// further appends or another size probe afterward.
func (e *Encoder) Size() (int, error) {
	data, err := e.Encode()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// Encode4 is the v4 encode stub: the reference encoder never implemented
// v4/5/6 writing, only reading, so this always fails.
func (e *Encoder) Encode4() ([]byte, error) { return nil, ErrUnsupportedEncodeVersion }

// Encode5 is the v5 encode stub; see Encode4.
func (e *Encoder) Encode5() ([]byte, error) { return nil, ErrUnsupportedEncodeVersion }

// Encode6 is the v6 encode stub; see Encode4.
func (e *Encoder) Encode6() ([]byte, error) { return nil, ErrUnsupportedEncodeVersion }

// Size4 is the v4 size stub; see Encode4.
func (e *Encoder) Size4() (int, error) { return 0, ErrUnsupportedEncodeVersion }

// Size5 is the v5 size stub; see Encode4.
func (e *Encoder) Size5() (int, error) { return 0, ErrUnsupportedEncodeVersion }

// Size6 is the v6 size stub; see Encode4.
func (e *Encoder) Size6() (int, error) { return 0, ErrUnsupportedEncodeVersion }
