/*
NAME
  decoder.go - PEC container decoding.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package pec

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/pes/stitch"
)

// ErrShortBuffer is returned when data is too small to hold a PEC header.
var ErrShortBuffer = errors.New("pec: buffer too short for header")

// Decode parses a complete PEC payload (the container embedded in a PES
// file, or a standalone .pec file) into a Doc.
func Decode(data []byte) (*Doc, error) {
	if len(data) < StitchStreamOffset {
		return nil, ErrShortBuffer
	}

	label := strings.TrimRight(string(data[LabelOffset:LabelOffset+LabelSize]), " ")

	threadCount := int(data[ThreadCountOffset]) + 1
	if PaletteOffset+threadCount > len(data) {
		return nil, errors.Wrap(ErrShortBuffer, "thread palette")
	}
	threads := make([]int, threadCount)
	for i := 0; i < threadCount; i++ {
		threads[i] = int(data[PaletteOffset+i])
	}

	stitches, _, err := decodeStitchStream(data, StitchStreamOffset)
	if err != nil {
		return nil, errors.Wrap(err, "stitch stream")
	}
	var bounds stitch.Bounds
	for _, s := range stitches {
		if s.Kind != stitch.Stop {
			bounds.Update(s.X, s.Y)
		}
	}

	doc := &Doc{
		Label:    label,
		Threads:  threads,
		Stitches: stitches,
		Bounds:   bounds,
	}

	thumbOffset := binary.LittleEndian.Uint16(data[ThumbOffsetOffset : ThumbOffsetOffset+2])
	base := BlockBaseOffset + int(thumbOffset)
	width := int(data[ThumbWidthOffset]) * 8
	height := int(data[ThumbHeightOffset])
	if width == 0 {
		width, height = ThumbWidth, ThumbHeight
	}
	imageSize := width * height / 8
	images := threadCount + 1
	if base+images*imageSize <= len(data) {
		doc.Thumbnails = make([]Thumbnail, images)
		for i := 0; i < images; i++ {
			start := base + i*imageSize
			doc.Thumbnails[i] = Thumbnail{
				Width:  width,
				Height: height,
				Bits:   append([]byte(nil), data[start:start+imageSize]...),
			}
		}
	}

	return doc, nil
}
