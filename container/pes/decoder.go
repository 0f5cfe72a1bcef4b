/*
NAME
  decoder.go - PES container decoding.

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

// ErrUnknownVersion is returned when the 4-digit version tag following
// Magic does not match a supported version.
var ErrUnknownVersion = errors.New("pes: unknown version tag")

// Decode parses a complete PES file into a Doc. All versions are
// supported for decoding; see Encode for the version restriction on
// writing.
func Decode(data []byte) (*Doc, error) {
	c := newCursor(data)

	magic, err := c.bytes(4)
	if err != nil {
		return nil, errors.Wrap(err, "magic")
	}
	if string(magic) != Magic {
		return nil, errors.Wrap(ErrMarkerMismatch, "magic")
	}
	tagBytes, err := c.bytes(4)
	if err != nil {
		return nil, errors.Wrap(err, "version tag")
	}
	version, ok := versionTags[string(tagBytes)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVersion, "tag %q", tagBytes)
	}

	pecOffset, err := c.u32()
	if err != nil {
		return nil, errors.Wrap(err, "pec offset")
	}

	doc := &Doc{Version: version}

	switch version {
	case V1:
		if err := c.skip(10); err != nil {
			return nil, err
		}
	case V4:
		if err := decodeV4Header(c, doc); err != nil {
			return nil, err
		}
	case V5:
		if err := decodeV5V6Header(c, doc, 49); err != nil {
			return nil, err
		}
	case V6:
		if err := decodeV6Header(c, doc); err != nil {
			return nil, err
		}
	}

	cb, err := readCEmbOne(c)
	if err != nil {
		return nil, errors.Wrap(err, "CEmbOne")
	}
	doc.Bounds1, doc.Bounds2 = cb.bounds1, cb.bounds2
	doc.Transform = cb.transform
	doc.Width, doc.Height = cb.width, cb.height

	blocks, rawChanges, err := readCSewSeg(c)
	if err != nil {
		return nil, errors.Wrap(err, "CSewSeg")
	}
	doc.Blocks = blocks

	doc.resolveThreadChanges(rawChanges)

	if int(pecOffset) <= len(data) {
		doc.PEC = append([]byte(nil), data[pecOffset:]...)
	}

	return doc, nil
}

func decodeV4Header(c *cursor, doc *Doc) error {
	if err := c.skip(4); err != nil {
		return err
	}
	name, err := c.str()
	if err != nil {
		return err
	}
	doc.Name = name
	if err := c.skip(6); err != nil {
		return err
	}
	w, err := c.u16()
	if err != nil {
		return err
	}
	h, err := c.u16()
	if err != nil {
		return err
	}
	doc.HoopWidth, doc.HoopHeight = int(w), int(h)
	return c.skip(28)
}

func decodeV5V6Header(c *cursor, doc *Doc, passthroughAfterHoop int) error {
	if err := c.skip(4); err != nil {
		return err
	}
	name, err := c.str()
	if err != nil {
		return err
	}
	doc.Name = name
	if err := c.skip(6); err != nil {
		return err
	}
	w, err := c.u16()
	if err != nil {
		return err
	}
	h, err := c.u16()
	if err != nil {
		return err
	}
	doc.HoopWidth, doc.HoopHeight = int(w), int(h)
	if err := c.skip(passthroughAfterHoop); err != nil {
		return err
	}
	threads, err := readThreadTable(c)
	if err != nil {
		return err
	}
	doc.Threads = threads
	return c.skip(6)
}

func decodeV6Header(c *cursor, doc *Doc) error {
	if err := c.skip(4); err != nil {
		return err
	}
	name, err := c.str()
	if err != nil {
		return err
	}
	doc.Name = name
	if err := c.skip(8); err != nil {
		return err
	}
	w, err := c.u16()
	if err != nil {
		return err
	}
	h, err := c.u16()
	if err != nil {
		return err
	}
	doc.HoopWidth, doc.HoopHeight = int(w), int(h)
	if err := c.skip(59); err != nil {
		return err
	}
	threads, err := readThreadTable(c)
	if err != nil {
		return err
	}
	doc.Threads = threads
	return c.skip(6)
}

// resolveThreadChanges turns raw change-table values into ThreadChanges
// indexing doc.Threads, materializing a palette thread for v1/v4 (whose
// change values are palette indices) on first use.
func (doc *Doc) resolveThreadChanges(raw []rawThreadChange) {
	hasTable := doc.Version == V5 || doc.Version == V6
	for _, r := range raw {
		var threadIndex int
		if hasTable {
			threadIndex = r.value
		} else {
			doc.Threads = append(doc.Threads, paletteThread(r.value))
			threadIndex = len(doc.Threads) - 1
		}
		doc.ThreadChanges = append(doc.ThreadChanges, ThreadChange{BlockIndex: r.blockIndex, ThreadIndex: threadIndex})
	}
}

func paletteThread(paletteIndex int) stitch.Thread {
	t := palette.Thread(paletteIndex)
	t.Index = paletteIndex
	return t
}

// DecodePEC decodes the embedded PEC payload, a convenience wrapper
// around pec.Decode for callers who only need the stitch stream.
func (d *Doc) DecodePEC() (*pec.Doc, error) {
	return pec.Decode(d.PEC)
}
