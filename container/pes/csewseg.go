/*
NAME
  csewseg.go - CSewSeg stitch-block sequence and the thread-change table.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pes

// csewsegPad is the 9 passthrough bytes between the "CSewSeg" literal
// and the first block header.
const csewsegPad = 9

func readCSewSeg(c *cursor) ([]Block, []rawThreadChange, error) {
	if err := c.literal("CSewSeg"); err != nil {
		return nil, nil, err
	}
	if _, err := c.bytes(csewsegPad); err != nil {
		return nil, nil, err
	}

	var blocks []Block
	for {
		typeCode, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		id, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		count, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		points := make([]Point, count)
		for i := range points {
			x, err := c.i16()
			if err != nil {
				return nil, nil, err
			}
			y, err := c.i16()
			if err != nil {
				return nil, nil, err
			}
			points[i] = Point{X: int(x), Y: int(y)}
		}
		blocks = append(blocks, Block{Type: typeCode, ID: id, Points: points})

		cont, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		if cont != continuationMore {
			break
		}
	}

	changeCount, err := c.u16()
	if err != nil {
		return nil, nil, err
	}
	changes := make([]rawThreadChange, changeCount)
	for i := range changes {
		blockIndex, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		threadIndex, err := c.u16()
		if err != nil {
			return nil, nil, err
		}
		changes[i] = rawThreadChange{blockIndex: int(blockIndex), value: int(threadIndex)}
	}

	return blocks, changes, nil
}

// rawThreadChange is a change-table entry before its value is resolved:
// for v1/v4 it is a palette index, for v5/v6 an index into the file's own
// thread table.
type rawThreadChange struct {
	blockIndex int
	value      int
}

func writeCSewSeg(w *writer, blocks []Block, changes []rawThreadChange) {
	w.literal("CSewSeg")
	w.zeros(csewsegPad)

	if len(blocks) == 0 {
		// readCSewSeg always reads at least one block header; an empty
		// document still needs a zero-length terminating block, or the
		// change-table count below would be misread as one.
		w.u16(BlockNormal)
		w.u16(0)
		w.u16(0)
		w.u16(0)
	}
	for i, b := range blocks {
		w.u16(b.Type)
		w.u16(b.ID)
		w.u16(uint16(len(b.Points)))
		for _, p := range b.Points {
			w.i16(int16(p.X))
			w.i16(int16(p.Y))
		}
		if i == len(blocks)-1 {
			w.u16(0)
		} else {
			w.u16(continuationMore)
		}
	}

	w.u16(uint16(len(changes)))
	for _, ch := range changes {
		w.u16(uint16(ch.blockIndex))
		w.u16(uint16(ch.value))
	}
}
