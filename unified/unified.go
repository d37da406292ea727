// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package unified converts patches of text lines to and from the unified diff format.
//
// Lines are passed without line endings and returned without line endings. Joining them with "\n"
// (and a final "\n") produces the text that diff -u would print for the same hunks.
//
// Hunk starts are 1-based. An empty range is reported at the position of the first line after the
// insertion point, i.e. inserting into an empty file is reported as "@@ -1,0 +1,n @@". [Parse]
// uses the same convention, so [Format] and [Parse] are inverses of each other.
package unified

import (
	"fmt"

	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/config"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

// Unified compares x and y and returns the difference in unified format. The file headers use
// xName and yName.
//
// The following options are supported: [seqdiff.Context], [seqdiff.Minimal], [seqdiff.Fast]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Unified(xName, yName string, x, y []string, opts ...seqdiff.Option) []string {
	cfg := config.FromOptions(opts, config.Context|config.Minimal|config.Fast)
	var diffOpts []seqdiff.Option
	switch cfg.Mode {
	case config.ModeMinimal:
		diffOpts = append(diffOpts, seqdiff.Minimal())
	case config.ModeFast:
		diffOpts = append(diffOpts, seqdiff.Fast())
	}
	return Format(xName, yName, x, seqdiff.Diff(x, y, diffOpts...), cfg.Context)
}

// Format renders p in unified format. The original lines x are needed to print context lines
// around changes. Up to context unchanged lines are printed before and after every hunk; deltas
// that are separated by at most 2*context unchanged lines are merged into one hunk.
//
// If p is empty, the result is empty as well, without file headers.
func Format(xName, yName string, x []string, p *seqdiff.Patch[string], context int) []string {
	deltas := p.Deltas()
	if len(deltas) == 0 {
		return nil
	}
	context = max(0, context)

	out := []string{"--- " + xName, "+++ " + yName}
	for len(deltas) > 0 {
		n := 1
		for n < len(deltas) && mergeable(deltas[n-1], deltas[n], context) {
			n++
		}
		out = appendHunk(out, x, deltas[:n], context)
		deltas = deltas[n:]
	}
	return out
}

// mergeable reports whether next is close enough to cur for their context lines to touch.
func mergeable(cur, next seqdiff.Delta[string], context int) bool {
	return cur.Original.End()+context >= next.Original.Position-context
}

// appendHunk appends header and body of a hunk made of deltas to out.
func appendHunk(out []string, x []string, deltas []seqdiff.Delta[string], context int) []string {
	first, last := deltas[0], deltas[len(deltas)-1]

	// Context is clipped to the lines that actually exist, also when x is shorter than the patch
	// claims.
	s0 := min(max(0, first.Original.Position-context), len(x))
	lead := max(0, first.Original.Position-s0)
	t0 := max(0, first.Revised.Position-lead)

	header := len(out)
	out = append(out, "") // placeholder
	var nx, ny int
	s := s0
	for _, d := range deltas {
		for _, line := range clip(x, s, d.Original.Position) {
			out = append(out, prefixMatch+line)
			nx++
			ny++
		}
		for _, line := range d.Original.Elements {
			out = append(out, prefixDelete+line)
			nx++
		}
		for _, line := range d.Revised.Elements {
			out = append(out, prefixInsert+line)
			ny++
		}
		s = d.Original.End()
	}
	for _, line := range clip(x, last.Original.End(), last.Original.End()+context) {
		out = append(out, prefixMatch+line)
		nx++
		ny++
	}
	out[header] = fmt.Sprintf("@@ -%d,%d +%d,%d @@", s0+1, nx, t0+1, ny)
	return out
}

// clip returns x[lo:hi] with both bounds clipped to x.
func clip(x []string, lo, hi int) []string {
	lo = min(max(0, lo), len(x))
	hi = min(max(lo, hi), len(x))
	return x[lo:hi]
}
