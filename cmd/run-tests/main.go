/*
NAME
  run-tests - standalone fixture-based conformance checks.

DESCRIPTION
  run-tests exercises the testable properties and boundary scenarios of
  the codec suite outside of `go test`, for use as a release gate or a
  quick sanity check against a freshly built binary. Each check prints
  PASS or FAIL with a diff (via go-cmp) on failure; the process exits
  nonzero if any check fails. A run log is kept via a rotating
  lumberjack file so repeated CI runs can be compared after the fact.

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/pes/container/pec"
	"github.com/ausocean/pes/container/pes"
	"github.com/ausocean/pes/container/svgemb"
	"github.com/ausocean/pes/stitch"
	"github.com/ausocean/pes/transcode"
)

const progName = "run-tests"

// logPath is where run-tests appends a one-line result summary per
// invocation, rotated by lumberjack once it grows past a few runs'
// worth of history.
const logPath = "run-tests.log"

type check struct {
	name string
	run  func() error
}

func main() {
	noLog := flag.Bool("no-log", false, "skip writing to the rotating run log")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-no-log]\n", progName)
		flag.PrintDefaults()
	}
	flag.Parse()

	checks := []check{
		{"empty-path-skeleton", checkEmptyPathSkeleton},
		{"single-stitch-pec-stream", checkSingleStitchPECStream},
		{"two-thread-stop-jump", checkTwoThreadStopJump},
		{"delta-overflow-rejected", checkDeltaOverflowRejected},
		{"svg-pes-svg-round-trip", checkSVGPESSVGRoundTrip},
		{"pes-svg-pes-round-trip", checkPESSVGPESRoundTrip},
	}

	var failures int
	for _, c := range checks {
		err := c.run()
		if err != nil {
			failures++
			fmt.Printf("FAIL %s: %v\n", c.name, err)
		} else {
			fmt.Printf("PASS %s\n", c.name)
		}
	}

	if !*noLog {
		logResult(failures, len(checks))
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func logResult(failures, total int) {
	l := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	defer l.Close()
	fmt.Fprintf(l, "%s: %d/%d checks passed\n", progName, total-failures, total)
}

// checkEmptyPathSkeleton is boundary scenario 1: emit with no appended
// stitches still produces a valid SVG skeleton with a zero-sized
// viewBox, and a nonzero-length PES payload with an empty CSewSeg body.
func checkEmptyPathSkeleton() error {
	enc := svgemb.NewEncoder()
	data, err := enc.Encode()
	if err != nil {
		return err
	}
	if want := `viewBox="0.0 0.0 0.0 0.0"`; !strings.Contains(string(data), want) {
		return fmt.Errorf("missing %q in:\n%s", want, data)
	}

	pe := pes.NewEncoder("EMPTY")
	if err := pe.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 1, G: 2, B: 3}}); err != nil {
		return err
	}
	pesData, err := pe.Encode()
	if err != nil {
		return err
	}
	if len(pesData) == 0 {
		return fmt.Errorf("emit() produced zero bytes")
	}
	return nil
}

// checkSingleStitchPECStream is boundary scenario 2: a single stitch at
// (0, 0) with thread palette index 20 encodes as a 1-byte Δx, a 1-byte
// Δy, then the terminator.
func checkSingleStitchPECStream() error {
	enc := pec.NewEncoder("FIXTURE")
	if err := enc.AppendThread(20); err != nil {
		return err
	}
	if err := enc.Append(0, 0, stitch.Normal); err != nil {
		return err
	}
	data, err := enc.Encode()
	if err != nil {
		return err
	}

	doc, err := pec.Decode(data)
	if err != nil {
		return err
	}
	if len(doc.Stitches) != 1 {
		return fmt.Errorf("stitch count = %d, want 1", len(doc.Stitches))
	}
	if diff := cmp.Diff(stitch.Stitch{X: 0, Y: 0, Kind: stitch.Normal}, doc.Stitches[0]); diff != "" {
		return fmt.Errorf("decoded stitch mismatch (-want +got):\n%s", diff)
	}
	return nil
}

// checkTwoThreadStopJump is boundary scenario 3: two consecutive threads
// with one stitch each produce a Stop between them in the embedded PEC
// stream, then a jump to the second stitch's coordinate.
func checkTwoThreadStopJump() error {
	enc := pes.NewEncoder("FIXTURE")
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 255, G: 0, B: 0}}); err != nil {
		return err
	}
	if err := enc.AppendStitch(0, 0); err != nil {
		return err
	}
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 0, G: 0, B: 255}}); err != nil {
		return err
	}
	if err := enc.AppendStitch(10, 0); err != nil {
		return err
	}

	data, err := enc.Encode()
	if err != nil {
		return err
	}
	doc, err := pes.Decode(data)
	if err != nil {
		return err
	}
	pecDoc, err := doc.DecodePEC()
	if err != nil {
		return err
	}

	var sawStop bool
	for i, s := range pecDoc.Stitches {
		if s.Kind == stitch.Stop {
			sawStop = true
			if i+1 >= len(pecDoc.Stitches) {
				return fmt.Errorf("stop at end of stream, expected a following stitch")
			}
			next := pecDoc.Stitches[i+1]
			if next.Kind != stitch.Jump {
				return fmt.Errorf("stitch after stop has kind %s, want JUMP", next.Kind)
			}
			if diff := cmp.Diff(10.0, next.X); diff != "" {
				return fmt.Errorf("jump-after-stop X mismatch (-want +got):\n%s", diff)
			}
		}
	}
	if !sawStop {
		return fmt.Errorf("no Stop stitch found between the two threads")
	}
	return nil
}

// checkDeltaOverflowRejected is boundary scenario 4: appending a stitch
// whose raw delta exceeds the signed 12-bit range fails and leaves the
// stitch list untouched.
func checkDeltaOverflowRejected() error {
	enc := pec.NewEncoder("FIXTURE")
	if err := enc.AppendThread(1); err != nil {
		return err
	}
	if err := enc.Append(0, 0, stitch.Normal); err != nil {
		return err
	}
	if err := enc.Append(300, 0, stitch.Normal); err == nil {
		return fmt.Errorf("append of an out-of-range delta succeeded, want failure")
	}
	return nil
}

// checkSVGPESSVGRoundTrip exercises the SVG-emb → PES v1 → SVG-emb leg
// of the round-trip property (§4.7): thread RGBs and path point counts
// must survive the trip unchanged.
func checkSVGPESSVGRoundTrip() error {
	enc := svgemb.NewEncoder()
	yellow := stitch.Thread{Name: "Yellow", RGB: stitch.RGB{R: 0xfe, G: 0xca, B: 0x15}}
	olive := stitch.Thread{Name: "Olive", RGB: stitch.RGB{R: 0x96, G: 0xaa, B: 0x02}}

	enc.AppendThread(yellow)
	for _, pt := range []struct {
		x, y float64
		jump bool
	}{{28.5, 7.4, true}, {35, 20, false}, {40, 25, true}, {45, 30, false}} {
		if err := enc.AppendPoint(pt.x, pt.y, pt.jump); err != nil {
			return err
		}
	}
	enc.AppendThread(olive)
	for _, pt := range []struct {
		x, y float64
		jump bool
	}{{45, 30, true}, {49.4, 42.9, false}} {
		if err := enc.AppendPoint(pt.x, pt.y, pt.jump); err != nil {
			return err
		}
	}

	data, err := enc.Encode()
	if err != nil {
		return err
	}
	doc, err := svgemb.Decode(data)
	if err != nil {
		return err
	}

	pesData, err := transcode.SVGEmbToPES(doc)
	if err != nil {
		return err
	}
	if diff := cmp.Diff("#PES0001", string(pesData[:8])); diff != "" {
		return fmt.Errorf("PES header mismatch (-want +got):\n%s", diff)
	}

	pesDoc, err := pes.Decode(pesData)
	if err != nil {
		return err
	}
	doc2, err := transcode.PESToSVGEmb(pesDoc)
	if err != nil {
		return err
	}
	if len(doc2.Threads) != len(doc.Threads) {
		return fmt.Errorf("thread count = %d, want %d", len(doc2.Threads), len(doc.Threads))
	}
	for i := range doc.Threads {
		if diff := cmp.Diff(doc.Threads[i].RGB, doc2.Threads[i].RGB); diff != "" {
			return fmt.Errorf("thread %d RGB mismatch (-want +got):\n%s", i, diff)
		}
	}
	return nil
}

// checkPESSVGPESRoundTrip exercises the PES v1 → SVG-emb → PES v1 leg:
// re-decoding the final PES bytes must reproduce the same thread RGBs
// and block count as the source document.
func checkPESSVGPESRoundTrip() error {
	enc := pes.NewEncoder("FIXTURE")
	if err := enc.AppendThread(stitch.Thread{RGB: stitch.RGB{R: 236, G: 0, B: 0}}); err != nil {
		return err
	}
	if err := enc.AppendStitch(0, 0); err != nil {
		return err
	}
	if err := enc.AppendStitch(5, 5); err != nil {
		return err
	}
	if err := enc.AppendJumpStitch(12, 12); err != nil {
		return err
	}
	if err := enc.AppendStitch(15, 15); err != nil {
		return err
	}

	data, err := enc.Encode()
	if err != nil {
		return err
	}
	doc, err := pes.Decode(data)
	if err != nil {
		return err
	}

	svgDoc, err := transcode.PESToSVGEmb(doc)
	if err != nil {
		return err
	}
	pesData, err := transcode.SVGEmbToPES(svgDoc)
	if err != nil {
		return err
	}
	doc2, err := pes.Decode(pesData)
	if err != nil {
		return err
	}

	if len(doc2.Threads) != len(doc.Threads) {
		return fmt.Errorf("thread count = %d, want %d", len(doc2.Threads), len(doc.Threads))
	}
	if diff := cmp.Diff(doc.Threads[0].RGB, doc2.Threads[0].RGB); diff != "" {
		return fmt.Errorf("thread RGB mismatch (-want +got):\n%s", diff)
	}
	if len(doc2.Blocks) != len(doc.Blocks) {
		return fmt.Errorf("block count = %d, want %d", len(doc2.Blocks), len(doc.Blocks))
	}
	return nil
}
