// diff is a small CLI to manually run the diffing implementations used for benchmarking.
//
// For the seqdiff implementations, -context sets the number of context lines and -check parses
// the output back and applies it to the first input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/tools/txtar"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/benchmarks"
	"znkr.io/seqdiff/unified"
)

type config struct {
	lib     string
	x, y    string
	txtar   string
	context int
	check   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "seqdiff", "library to use for diffing")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.IntVar(&cfg.context, "context", -1, "number of context lines, seqdiff only (default: library default)")
	flag.BoolVar(&cfg.check, "check", false, "parse the output and apply it to x, seqdiff only")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg config) error {
	x, y, err := inputs(cfg)
	if err != nil {
		return err
	}

	opts, isSeqdiff := benchmarks.Modes[cfg.lib]
	if !isSeqdiff {
		if cfg.context >= 0 || cfg.check {
			return fmt.Errorf("-context and -check are only supported for seqdiff, not %q", cfg.lib)
		}
		i := slices.IndexFunc(benchmarks.Impls, func(impl benchmarks.Impl) bool { return impl.Name == cfg.lib })
		if i < 0 {
			return fmt.Errorf("lib not found %q", cfg.lib)
		}
		_, err := w.Write(benchmarks.Impls[i].Diff(x, y))
		return err
	}

	if cfg.context >= 0 {
		opts = append(slices.Clip(opts), seqdiff.Context(cfg.context))
	}
	xl, yl := benchmarks.Lines(x), benchmarks.Lines(y)
	out := unified.Unified("x", "y", xl, yl, opts...)

	if cfg.check {
		p, err := unified.Parse(out, unified.Strict())
		if err != nil {
			return fmt.Errorf("parsing diff: %v", err)
		}
		got, err := seqdiff.Apply(p, xl)
		if err != nil {
			return fmt.Errorf("applying diff: %v", err)
		}
		if !slices.Equal(got, yl) {
			return fmt.Errorf("applying diff to x doesn't reproduce y")
		}
	}

	if len(out) == 0 {
		return nil
	}
	_, err = io.WriteString(w, strings.Join(out, "\n")+"\n")
	return err
}

func inputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		}
	}
	return x, y, nil
}
