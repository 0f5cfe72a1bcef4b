/*
NAME
  threadtable.go - v5/v6 embedded thread table.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pes

import "github.com/ausocean/pes/stitch"

func readThreadTable(c *cursor) ([]stitch.Thread, error) {
	count, err := c.u16()
	if err != nil {
		return nil, err
	}
	threads := make([]stitch.Thread, count)
	for i := range threads {
		code, err := c.str()
		if err != nil {
			return nil, err
		}
		rgb, err := c.bytes(3)
		if err != nil {
			return nil, err
		}
		if _, err := c.u8(); err != nil { // unknown
			return nil, err
		}
		typeByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		if _, err := c.bytes(3); err != nil { // unknown
			return nil, err
		}
		id, err := c.str()
		if err != nil {
			return nil, err
		}
		name, err := c.str()
		if err != nil {
			return nil, err
		}
		if _, err := c.u8(); err != nil { // unknown
			return nil, err
		}
		threads[i] = stitch.Thread{
			Index: i + 1,
			ID:    id,
			Code:  code,
			Name:  name,
			Type:  stitch.ThreadTypeLetter(int(typeByte)),
			RGB:   stitch.RGB{R: rgb[0], G: rgb[1], B: rgb[2]},
		}
	}
	return threads, nil
}

func writeThreadTable(w *writer, threads []stitch.Thread) {
	w.u16(uint16(len(threads)))
	for _, t := range threads {
		w.str(t.Code)
		w.bytes([]byte{t.RGB.R, t.RGB.G, t.RGB.B})
		w.u8(0)
		w.u8(threadTypeByte(t.Type))
		w.zeros(3)
		w.str(t.ID)
		w.str(t.Name)
		w.u8(0)
	}
}

// threadTypeByte maps a type letter A-F back to its 0xA-0xF byte; any
// other letter (including "-") is written as 0xA.
func threadTypeByte(letter string) byte {
	if len(letter) == 1 && letter[0] >= 'A' && letter[0] <= 'F' {
		return 0xA + (letter[0] - 'A')
	}
	return 0xA
}
