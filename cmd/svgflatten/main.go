package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/flatten"
	"github.com/tdewolff/flatten/svg"
)

type Flatten struct {
	Precision        int    `short:"p" default:"0" desc:"Significant digits of numbers, 0 keeps all digits"`
	RemoveReferenced bool   `desc:"Remove elements referenced by use elements"`
	Verbose          bool   `short:"v" desc:"Log every flattened element"`
	Output           string `short:"o" desc:"Output file, defaults to stdout"`
	Input            string `index:"0" desc:"Input SVG file"`
}

func main() {
	root := argp.NewCmd(&Flatten{}, "Flatten translate, rotate and scale transforms of SVG shapes into their coordinates")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Flatten) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	} else if cmd.Precision < 0 {
		fmt.Fprintln(os.Stderr, "ERROR: precision must be positive")
		return argp.ShowUsage
	}

	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	flatten.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	f, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := svg.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}

	opts := flatten.DefaultOptions
	opts.Precision = cmd.Precision
	opts.RemoveReferenced = cmd.RemoveReferenced
	diags, flattenErr := flatten.Flatten(doc, opts)

	buf := &bytes.Buffer{}
	if _, err := doc.WriteTo(buf); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if cmd.Output != "" {
		fw, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer fw.Close()
		w = fw
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if 0 < len(diags) {
		fmt.Fprintf(os.Stderr, "%d warnings, %d errors\n", len(diags.Warnings()), len(diags.Errors()))
	}
	return flattenErr
}
