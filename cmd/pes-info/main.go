/*
NAME
  pes-info - print the decoded structure of a PES or PEC embroidery file.

DESCRIPTION
  pes-info reads a PES (or standalone PEC) file from a named path or
  stdin and reports its header fields, thread palette and stitch
  counts. The -plot flag additionally renders the stitch path to a PNG
  for visual inspection. The -journal flag sends the same summary to
  the system journal instead of stdout, for use when pes-info is
  invoked from a unit rather than a terminal.

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/journal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/pes/container/pec"
	"github.com/ausocean/pes/container/pes"
	"github.com/ausocean/pes/stitch"
)

const progName = "pes-info"

func main() {
	plotPath := flag.String("plot", "", "render the stitch path to this PNG file")
	useJournal := flag.Bool("journal", false, "log the summary to the system journal instead of stdout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-plot file.png] [-journal] [file.pes|-]\n", progName)
		flag.PrintDefaults()
	}
	flag.Parse()

	in, err := openInput(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		fatal(err)
	}

	var stitches []stitch.Stitch
	var summary string

	if len(data) >= 4 && string(data[:4]) == pes.Magic {
		doc, err := pes.Decode(data)
		if err != nil {
			fatal(err)
		}
		summary = summarizePES(doc)
		doc.Walk(func(s stitch.Stitch, thread stitch.Thread) bool {
			stitches = append(stitches, s)
			return true
		})
	} else {
		doc, err := pec.Decode(data)
		if err != nil {
			fatal(err)
		}
		summary = summarizePEC(doc)
		stitches = doc.Stitches
	}

	if *useJournal {
		if err := journal.Print(journal.PriInfo, "%s", summary); err != nil {
			fmt.Fprintln(os.Stderr, summary)
		}
	} else {
		fmt.Println(summary)
	}

	if *plotPath != "" {
		if err := renderPlot(*plotPath, stitches); err != nil {
			fatal(err)
		}
	}
}

func summarizePES(doc *pes.Doc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "version: %d\n", doc.Version)
	fmt.Fprintf(&b, "name: %q\n", doc.Name)
	fmt.Fprintf(&b, "hoop: %dx%d mm\n", doc.HoopWidth, doc.HoopHeight)
	fmt.Fprintf(&b, "threads: %d\n", len(doc.Threads))
	for i, t := range doc.Threads {
		fmt.Fprintf(&b, "  [%d] %s #%02x%02x%02x\n", i, t.Name, t.RGB.R, t.RGB.G, t.RGB.B)
	}
	fmt.Fprintf(&b, "blocks: %d\n", len(doc.Blocks))
	fmt.Fprintf(&b, "bounds1: %.1f,%.1f - %.1f,%.1f\n", doc.Bounds1.MinX, doc.Bounds1.MinY, doc.Bounds1.MaxX, doc.Bounds1.MaxY)
	fmt.Fprintf(&b, "width/height: %.1f/%.1f mm\n", doc.Width, doc.Height)
	return strings.TrimRight(b.String(), "\n")
}

func summarizePEC(doc *pec.Doc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "label: %q\n", doc.Label)
	fmt.Fprintf(&b, "threads: %d\n", len(doc.Threads))
	fmt.Fprintf(&b, "stitches: %d\n", len(doc.Stitches))
	fmt.Fprintf(&b, "bounds: %.1f,%.1f - %.1f,%.1f\n", doc.Bounds.MinX, doc.Bounds.MinY, doc.Bounds.MaxX, doc.Bounds.MaxY)
	fmt.Fprintf(&b, "thumbnails: %d\n", len(doc.Thumbnails))
	return strings.TrimRight(b.String(), "\n")
}

// renderPlot draws the Normal-stitch path as a connected line, breaking
// into a new plotter.Line for each run delimited by a Jump, Trim or Stop.
func renderPlot(path string, stitches []stitch.Stitch) error {
	p := plot.New()
	p.Title.Text = "stitch path"
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	var run plotter.XYs
	flush := func() error {
		if len(run) < 2 {
			run = nil
			return nil
		}
		line, err := plotter.NewLine(run)
		if err != nil {
			return err
		}
		p.Add(line)
		run = nil
		return nil
	}
	for _, s := range stitches {
		if s.Kind != stitch.Normal {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		run = append(run, plotter.XY{X: s.X, Y: s.Y})
	}
	if err := flush(); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

func openInput(path string) (io.Reader, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
	os.Exit(1)
}
