// Package benchmarks compares znkr.io/seqdiff with other Go diff libraries.
package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	"github.com/pmezard/go-difflib/difflib"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/unified"
)

type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

func seqdiffImpl(opts ...seqdiff.Option) func(x, y []byte) []byte {
	return func(x, y []byte) []byte {
		out := unified.Unified("x", "y", Lines(x), Lines(y), opts...)
		if len(out) == 0 {
			return nil
		}
		return []byte(strings.Join(out, "\n") + "\n")
	}
}

// Modes maps the names of the seqdiff implementations in Impls to their options.
var Modes = map[string][]seqdiff.Option{
	"seqdiff":         nil,
	"seqdiff-minimal": {seqdiff.Minimal()},
	"seqdiff-fast":    {seqdiff.Fast()},
}

var Impls = []Impl{
	{
		Name: "seqdiff",
		Diff: seqdiffImpl(Modes["seqdiff"]...),
	},
	{
		Name: "seqdiff-minimal",
		Diff: seqdiffImpl(Modes["seqdiff-minimal"]...),
	},
	{
		Name: "seqdiff-fast",
		Diff: seqdiffImpl(Modes["seqdiff-fast"]...),
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				prefix := " "
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				}
				for _, line := range strings.SplitAfter(diff.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for a < ch.A {
					buf.WriteString(" ")
					buf.Write(d.x[a])
					a++
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
				}
			}
			for a < len(d.x) {
				buf.WriteString(" ")
				buf.Write(d.x[a])
				a++
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
	{
		Name: "difflib",
		Diff: func(x, y []byte) []byte {
			out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(x)),
				B:        difflib.SplitLines(string(y)),
				FromFile: "x",
				ToFile:   "y",
				Context:  3,
			})
			if err != nil {
				panic(err)
			}
			return []byte(out)
		},
	},
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }

// Lines splits b into lines without line endings. A missing newline at the end is ignored.
func Lines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}
