/*
NAME
  reader.go - little-endian cursor over a PES buffer.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pes

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when a read would cross the end of the buffer.
var ErrTruncated = errors.New("pes: truncated input")

// ErrMarkerMismatch is returned when a length-prefixed literal (e.g.
// "CEmbOne") does not match what was expected.
var ErrMarkerMismatch = errors.New("pes: marker mismatch")

// cursor is a forward-only little-endian reader over a fixed buffer.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.data) {
		return ErrTruncated
	}
	return nil
}

func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *cursor) u8() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	return math.Float32frombits(v), err
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// str reads a 1-byte length prefix followed by that many ASCII bytes.
func (c *cursor) str() (string, error) {
	n, err := c.u8()
	if err != nil {
		return "", err
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// literal reads a u16 length prefix followed by exactly that many bytes,
// and checks they equal want.
func (c *cursor) literal(want string) error {
	n, err := c.u16()
	if err != nil {
		return err
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return err
	}
	if string(b) != want {
		return errors.Wrapf(ErrMarkerMismatch, "want %q, got %q", want, b)
	}
	return nil
}

// writer accumulates a little-endian byte stream.
type writer struct {
	buf []byte
}

func (w *writer) u8(v byte) { w.buf = append(w.buf, v) }

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) i16(v int16) { w.u16(uint16(v)) }

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) zeros(n int) { w.buf = append(w.buf, make([]byte, n)...) }

func (w *writer) str(s string) {
	w.u8(byte(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) literal(s string) {
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}
