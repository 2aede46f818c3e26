// Command fontops inspects and instantiates OpenType fonts.
//
// Usage:
//
//	fontops info FONT...
//	fontops axes FONT...
//	fontops instances FONT...
//	fontops static [-coords wght=700] [-style Bold] [-o DIR] FONT...
//	fontops slice -coords wght=300:700 [-o DIR] FONT...
//	fontops export [-formats woff,woff2] [-workers N] [-o DIR] FONT...
//	fontops sanitize [-strict] FONT...
//
// FONT arguments may be doublestar patterns such as "fonts/**/*.ttf".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/fontops"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, stdout io.Writer) error
}

var commands = []command{
	{"info", "print names, metrics and encoding", runInfo},
	{"axes", "list variation axes", runAxes},
	{"instances", "list named instances", runInstances},
	{"static", "pin a variable font to a static instance", runStatic},
	{"slice", "restrict the axes of a variable font", runSlice},
	{"export", "save every named instance as a static font", runExport},
	{"sanitize", "check fonts with the OpenType Sanitizer", runSanitize},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("fontops: ")

	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if *verbose {
		fontops.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(ctx, args, os.Stdout); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				os.Exit(2)
			}
			log.Fatal(err)
		}
		return
	}
	log.Printf("unknown command %q", name)
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: fontops [-v] <command> [flags] FONT...\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-10s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(out, "\nflags:\n")
	flag.PrintDefaults()
}
