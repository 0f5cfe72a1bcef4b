/*
NAME
  transcode.go - lossless conversion between the PES and SVG-embroidery
  containers.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

// Package transcode converts between Brother PES documents and the
// restricted SVG-embroidery subset, preserving thread order, the affine
// transform and the normal/jump stitch distinction so that the two
// round trips (PES → SVG-emb → PES and SVG-emb → PES → SVG-emb) are
// lossless for documents within the common feature set.
package transcode

import (
	"github.com/ausocean/pes/container/pes"
	"github.com/ausocean/pes/container/svgemb"
	"github.com/ausocean/pes/stitch"
)

// PESToSVGEmb drains a decoded PES document into a new SVG-embroidery
// document. One SVG thread (and its path) is appended each time the
// active thread changes, preserving PES thread order, and the affine
// transform carries over unchanged. Each block sets "expect jump on next
// stitch" when its stitch type is not Normal; a Normal-kind stitch is
// appended with that pending flag and the flag is cleared. Points
// belonging to non-Normal blocks are the framing between runs and are
// not appended.
func PESToSVGEmb(doc *pes.Doc) (*svgemb.Doc, error) {
	enc := svgemb.NewEncoder()
	enc.SetTransform(doc.Transform)

	haveThread := false
	currentThread := 0
	pendingJump := false
	for i, b := range doc.Blocks {
		thread, ok := doc.ThreadForBlock(i)
		if ok && (!haveThread || thread.Index != currentThread) {
			enc.AppendThread(thread)
			currentThread = thread.Index
			haveThread = true
		}
		if b.Type != pes.BlockNormal {
			pendingJump = true
			continue
		}
		for _, p := range b.Points {
			if err := enc.AppendPoint(stitch.RawToMM(p.X), stitch.RawToMM(p.Y), pendingJump); err != nil {
				return nil, err
			}
			pendingJump = false
		}
	}

	data, err := enc.Encode()
	if err != nil {
		return nil, err
	}
	return svgemb.Decode(data)
}

// SVGEmbToPES builds a PES v1 document from a decoded SVG-embroidery
// document. One PES thread is appended per SVG thread, preserving index,
// and the transform carries over unchanged. Within each SVG path
// (a single color run), the first stitch starts a fresh Normal block
// like any other thread change; every stitch after the first marked
// Jump is instead appended via AppendJumpStitch, matching the encoder's
// own block-per-jump framing.
func SVGEmbToPES(doc *svgemb.Doc) ([]byte, error) {
	enc := pes.NewEncoder("")
	enc.SetTransform(doc.Transform)

	for _, path := range doc.Paths {
		if path.ThreadIndex < 0 || path.ThreadIndex >= len(doc.Threads) {
			continue
		}
		if err := enc.AppendThread(doc.Threads[path.ThreadIndex]); err != nil {
			return nil, err
		}
		for i, pt := range path.Points {
			var err error
			if i > 0 && pt.Jump {
				err = enc.AppendJumpStitch(pt.X, pt.Y)
			} else {
				err = enc.AppendStitch(pt.X, pt.Y)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return enc.Encode()
}
