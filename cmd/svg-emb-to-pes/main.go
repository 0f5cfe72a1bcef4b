/*
NAME
  svg-emb-to-pes - convert SVG-embroidery to a PES v1 embroidery file.

DESCRIPTION
  Reads an SVG-embroidery document from a named path or stdin, converts
  it to a PES v1 file, and writes the result to a named path or stdout.
  The -watch flag keeps running, re-converting the input file every
  time it changes on disk; it requires a named input file (not stdin).

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

	"github.com/fsnotify/fsnotify"
	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/pes/container/svgemb"
	"github.com/ausocean/pes/transcode"
)

const progName = "svg-emb-to-pes"

const watchLogPath = "svg-emb-to-pes.log"

// log is set up only for -watch mode; one-shot conversions report
// errors directly to stderr via fatal instead.
var log logging.Logger

func main() {
	watch := flag.Bool("watch", false, "re-convert the input file each time it changes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-watch] [in.svg|-] [out.pes|-]\n", progName)
		flag.PrintDefaults()
	}
	flag.Parse()

	inPath := flag.Arg(0)
	outPath := flag.Arg(1)

	if err := checkExtension(outPath, ".pes"); err != nil {
		fatal(err)
	}

	if *watch {
		if inPath == "" || inPath == "-" {
			fatal(fmt.Errorf("%s: -watch requires a named input file", progName))
		}
		if err := runWatch(inPath, outPath); err != nil {
			fatal(err)
		}
		return
	}

	if err := convert(inPath, outPath); err != nil {
		fatal(err)
	}
}

func convert(inPath, outPath string) error {
	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	doc, err := svgemb.Decode(data)
	if err != nil {
		return err
	}
	out, err := transcode.SVGEmbToPES(doc)
	if err != nil {
		return err
	}

	return writeOutput(outPath, out)
}

// runWatch converts inPath once, then re-converts it on every write
// event reported by fsnotify until the process is interrupted. Log
// output goes to a rotating file rather than stderr, since -watch is
// meant to run unattended.
func runWatch(inPath, outPath string) error {
	fileLog := &lumberjack.Logger{Filename: watchLogPath, MaxSize: 5, MaxBackups: 3, MaxAge: 28}
	log = logging.New(logging.Info, fileLog, false)

	if err := convert(inPath, outPath); err != nil {
		log.Error("initial conversion failed", "error", err.Error())
	} else {
		log.Info("converted", "in", inPath, "out", outPath)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(inPath); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := convert(inPath, outPath); err != nil {
				log.Error("conversion failed", "error", err.Error())
				continue
			}
			log.Info("converted", "in", inPath, "out", outPath)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warning("watch error", "error", err.Error())
		}
	}
}

func openInput(path string) (io.Reader, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func checkExtension(path, ext string) error {
	if path == "" || path == "-" {
		return nil
	}
	if !strings.EqualFold(path[max(0, len(path)-len(ext)):], ext) {
		return fmt.Errorf("%s: output path %q should have extension %q", progName, path, ext)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
	os.Exit(1)
}
