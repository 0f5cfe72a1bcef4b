/*
NAME
  decoder.go - SVG-embroidery decoding: two passes over the document.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

package svgemb

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/pes/palette"
	"github.com/ausocean/pes/stitch"
	"github.com/ausocean/pes/xml/sax"
)

// ErrBadColor is returned when a stroke attribute is not "#rrggbb".
var ErrBadColor = errors.New("svgemb: stroke is not #rrggbb")

// ErrNoStroke is returned when a <path> has no stroke attribute.
var ErrNoStroke = errors.New("svgemb: path without stroke")

// ErrBadPathData is returned when a "d" attribute does not match the
// restricted M/L grammar.
var ErrBadPathData = errors.New("svgemb: path data does not match M/L grammar")

type rawPath struct {
	stroke string
	d      string
}

// Decode parses an SVG-embroidery document. Pass one enumerates distinct
// stroke colors in document order, building one Thread per color (using
// the nearest palette thread as a naming template, overridden with the
// exact RGB) and extracting the optional <g transform> matrix. Pass two
// walks the paths again, resolving each to its pass-one thread and
// parsing its "d" attribute into points.
func Decode(data []byte) (*Doc, error) {
	p := sax.New(data)

	var transform = stitch.Identity()
	var paths []rawPath
	inGroup := false

	err := p.ParseText(func(tok sax.Token) bool {
		switch tok.Kind {
		case sax.Open:
			if tok.Name == "g" {
				inGroup = true
			}
			if tok.Name == "path" {
				paths = append(paths, rawPath{})
			}
		case sax.Attribute:
			if inGroup && tok.Name == "transform" {
				if m, ok := parseMatrix(tok.Value); ok {
					transform = m
				}
			}
			if len(paths) > 0 {
				cur := &paths[len(paths)-1]
				switch tok.Name {
				case "stroke":
					cur.stroke = tok.Value
				case "d":
					cur.d = tok.Value
				}
			}
		case sax.Close:
			if tok.Name == "g" {
				inGroup = false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	threadIndex := map[stitch.RGB]int{}
	var threads []stitch.Thread
	for _, rp := range paths {
		if rp.stroke == "" {
			continue
		}
		rgb, err := parseRGB(rp.stroke)
		if err != nil {
			return nil, err
		}
		if _, ok := threadIndex[rgb]; !ok {
			threadIndex[rgb] = len(threads)
			threads = append(threads, newThread(rgb, len(threads)+1))
		}
	}

	doc := &Doc{Transform: transform, Threads: threads}
	for _, rp := range paths {
		if rp.stroke == "" {
			return nil, ErrNoStroke
		}
		rgb, err := parseRGB(rp.stroke)
		if err != nil {
			return nil, err
		}
		points, err := parsePathData(rp.d)
		if err != nil {
			return nil, err
		}
		doc.Paths = append(doc.Paths, Path{ThreadIndex: threadIndex[rgb], Points: points})
	}

	bounds := doc.Bounds()
	doc.Width, doc.Height = bounds.Width(), bounds.Height()
	return doc, nil
}

// newThread synthesizes a custom thread for rgb, using the nearest
// palette thread as a naming template but keeping the exact RGB.
func newThread(rgb stitch.RGB, index int) stitch.Thread {
	template := palette.Thread(palette.Nearest(rgb, nil))
	template.Index = index
	template.RGB = rgb
	return template
}

func parseRGB(hex string) (stitch.RGB, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return stitch.RGB{}, ErrBadColor
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return stitch.RGB{}, errors.Wrap(ErrBadColor, err.Error())
	}
	return stitch.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// parseMatrix parses "matrix(a b c d e f)", tolerating comma or space
// separators.
func parseMatrix(s string) (stitch.Affine, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "matrix(") || !strings.HasSuffix(s, ")") {
		return stitch.Affine{}, false
	}
	inner := s[len("matrix(") : len(s)-1]
	fields := strings.FieldsFunc(inner, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 6 {
		return stitch.Affine{}, false
	}
	var v [6]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return stitch.Affine{}, false
		}
		v[i] = n
	}
	return stitch.Affine{A: v[0], B: v[1], C: v[2], D: v[3], TX: v[4], TY: v[5]}, true
}

// parsePathData parses a "d" attribute matching exactly the grammar
// (M|L) number number, repeated. The command may be whitespace-separated
// from its numbers ("M 0 0") or run together ("M0 0"), since the encoder
// produces the latter.
func parsePathData(d string) ([]Point, error) {
	fields := strings.Fields(d)
	var points []Point
	i := 0
	for i < len(fields) {
		field := fields[i]
		var cmd byte
		var xField string
		switch {
		case field == "M" || field == "L":
			cmd = field[0]
			i++
			if i >= len(fields) {
				return nil, ErrBadPathData
			}
			xField = fields[i]
		case len(field) > 1 && (field[0] == 'M' || field[0] == 'L'):
			cmd = field[0]
			xField = field[1:]
		default:
			return nil, ErrBadPathData
		}
		x, err := strconv.ParseFloat(xField, 64)
		if err != nil {
			return nil, ErrBadPathData
		}
		if i+1 >= len(fields) {
			return nil, ErrBadPathData
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, ErrBadPathData
		}
		points = append(points, Point{X: x, Y: y, Jump: cmd == 'M'})
		i += 2
	}
	if len(points) == 0 {
		return nil, ErrBadPathData
	}
	return points, nil
}
