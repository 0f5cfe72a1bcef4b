/*
NAME
  pes.go - PES embroidery container: versions, document model and the
  shared block-walking iterator.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

// Package pes decodes and encodes Brother PES embroidery files: the
// versioned header, the CEmbOne geometry region, the CSewSeg stitch
// blocks, the thread table/change list, and the embedded PEC payload
// (via github.com/ausocean/pes/container/pec).
package pes

import "github.com/ausocean/pes/stitch"

// Magic is the fixed 4-byte tag every PES file begins with.
const Magic = "#PES"

// Version identifies a PES header layout.
type Version int

const (
	V1 Version = 1
	V4 Version = 4
	V5 Version = 5
	V6 Version = 6
)

// versionTags maps the 4-ASCII-digit version tag that follows Magic to
// its Version.
var versionTags = map[string]Version{
	"0001": V1,
	"0040": V4,
	"0050": V5,
	"0060": V6,
}

var tagByVersion = map[Version]string{
	V1: "0001",
	V4: "0040",
	V5: "0050",
	V6: "0060",
}

// Block stitch-type codes. A Jump block's two points bracket a needle
// move with no stitching; a Normal block is an ordinary sewn run.
const (
	BlockNormal uint16 = 0
	BlockJump   uint16 = 1
)

// continuationMore is the CSewSeg block-sequence continuation code that
// signals another block follows; any other value terminates the
// sequence.
const continuationMore uint16 = 0x8003

// Point is a raw (tenth-millimeter) coordinate pair as stored in a
// CSewSeg block.
type Point struct {
	X, Y int
}

// Block is one CSewSeg run: a stitch-type code, a block id and its
// points.
type Block struct {
	Type   uint16
	ID     uint16
	Points []Point
}

// ThreadChange maps a block index to the thread active from that block
// onward, resolved into Doc.Threads regardless of source version (v1/v4
// materialize a Thread from the palette; v5/v6 reference the file's own
// thread table).
type ThreadChange struct {
	BlockIndex  int
	ThreadIndex int
}

// Doc is a fully decoded (or not-yet-encoded) PES document.
type Doc struct {
	Version       Version
	Name          string
	HoopWidth     int // mm, 0 = undefined
	HoopHeight    int
	Threads       []stitch.Thread
	Bounds1       stitch.Bounds
	Bounds2       stitch.Bounds
	Transform     stitch.Affine
	Width, Height float64 // mm, derived
	Blocks        []Block
	ThreadChanges []ThreadChange
	PEC           []byte // embedded PEC payload, verbatim
}

// ThreadForBlock returns the thread active for block index i, given the
// change table is sorted by BlockIndex ascending.
func (d *Doc) ThreadForBlock(i int) (stitch.Thread, bool) {
	idx := -1
	for _, c := range d.ThreadChanges {
		if c.BlockIndex <= i {
			idx = c.ThreadIndex
		} else {
			break
		}
	}
	if idx < 0 || idx >= len(d.Threads) {
		return stitch.Thread{}, false
	}
	return d.Threads[idx], true
}

// Walk flattens the block/thread-change structure into an ordered stream
// of (stitch, thread) pairs, mirroring the original library's
// stitch_foreach: thread resolution happens before each block's stitches
// are emitted, and every point in a Jump block is tagged stitch.Jump. fn
// returns false to abort iteration early.
func (d *Doc) Walk(fn func(s stitch.Stitch, thread stitch.Thread) bool) {
	for i, b := range d.Blocks {
		thread, _ := d.ThreadForBlock(i)
		kind := stitch.Normal
		if b.Type != BlockNormal {
			kind = stitch.Jump
		}
		for _, p := range b.Points {
			s := stitch.Stitch{X: stitch.RawToMM(p.X), Y: stitch.RawToMM(p.Y), Kind: kind}
			if !fn(s, thread) {
				return
			}
		}
	}
}
