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

package unified

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/config"
)

var hunkHeader = regexp.MustCompile(`^@@\s+-(?:(\d+)(?:,(\d+))?)\s+\+(?:(\d+)(?:,(\d+))?)\s+@@$`)

// SyntaxError describes malformed unified diff input.
type SyntaxError struct {
	Line int    // 1-based line number
	Text string // Offending line
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Parse reads a patch from lines in unified format. Everything up to and including the first line
// starting with "+++" is skipped. Only a single file diff is supported.
//
// Every line in a hunk is tagged by its first character: ' ' for context, '-' for removed lines,
// and '+' for added lines. An empty line is a context line. Lines with any other tag (e.g.
// "\ No newline at end of file") are ignored. A hunk start of 0 is treated as 1.
//
// A hunk start always names the first line of the range, even if the range is empty. This matches
// the output of [Format], but not diff(1) and git, which use the line before an empty range.
// Hunks without context that only insert lines (e.g. from "git diff -U0") are therefore applied
// one line early. Verification can't detect this because the original chunk is empty.
//
// The following options are supported: [Strict], [WholeHunks]
//
// Parse returns an error wrapping [seqdiff.ErrOverlap] if two hunks overlap. In strict mode it
// returns a [*SyntaxError] for malformed input.
func Parse(lines []string, opts ...seqdiff.Option) (*seqdiff.Patch[string], error) {
	cfg := config.FromOptions(opts, config.Strict|config.WholeHunks)
	p := &parser{cfg: cfg, patch: &seqdiff.Patch[string]{}}

	i := slices.IndexFunc(lines, func(line string) bool { return strings.HasPrefix(line, "+++") })
	if i < 0 {
		if cfg.Strict && len(lines) > 0 {
			return nil, &SyntaxError{Line: 1, Text: lines[0], Msg: "missing +++ file header"}
		}
		return p.patch, nil
	}
	for j, line := range lines[i+1:] {
		if err := p.line(i+j+2, line); err != nil {
			return nil, err
		}
	}
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.patch, nil
}

type parser struct {
	cfg   config.Config
	patch *seqdiff.Patch[string]
	hunk  *hunk // nil outside of a hunk
}

type hunk struct {
	lineno             int
	header             string
	oldStart, oldCount int
	newStart, newCount int
	body               []taggedLine
}

type taggedLine struct {
	tag  byte
	text string
}

func (p *parser) line(lineno int, line string) error {
	if m := hunkHeader.FindStringSubmatch(line); m != nil {
		if err := p.flush(); err != nil {
			return err
		}
		var nums [4]int
		for k := range nums {
			n, err := atoi(m[k+1])
			if err != nil {
				return &SyntaxError{Line: lineno, Text: line, Msg: err.Error()}
			}
			nums[k] = n
		}
		p.hunk = &hunk{
			lineno:   lineno,
			header:   line,
			oldStart: max(1, nums[0]),
			oldCount: nums[1],
			newStart: max(1, nums[2]),
			newCount: nums[3],
		}
		return nil
	}
	if p.cfg.Strict && strings.HasPrefix(line, "@@") {
		return &SyntaxError{Line: lineno, Text: line, Msg: "malformed hunk header"}
	}

	tl := taggedLine{tag: ' '}
	if line != "" {
		tl = taggedLine{tag: line[0], text: line[1:]}
	}
	switch tl.tag {
	case ' ', '-', '+':
	default:
		return nil
	}
	if p.hunk == nil {
		if p.cfg.Strict {
			return &SyntaxError{Line: lineno, Text: line, Msg: "line outside of hunk"}
		}
		return nil
	}
	p.hunk.body = append(p.hunk.body, tl)
	return nil
}

// atoi parses a line number or count from a hunk header. Counts are optional and default to 1.
func atoi(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q in hunk header", s)
	}
	return n, nil
}

// flush converts the current hunk into deltas.
func (p *parser) flush() error {
	h := p.hunk
	if h == nil {
		return nil
	}
	p.hunk = nil

	if p.cfg.Strict {
		var nx, ny int
		for _, tl := range h.body {
			if tl.tag != '+' {
				nx++
			}
			if tl.tag != '-' {
				ny++
			}
		}
		if nx != h.oldCount || ny != h.newCount {
			msg := fmt.Sprintf("hunk has %d original and %d revised lines", nx, ny)
			return &SyntaxError{Line: h.lineno, Text: h.header, Msg: msg}
		}
	}

	if p.cfg.WholeHunks {
		var orig, rev []string
		for _, tl := range h.body {
			if tl.tag != '+' {
				orig = append(orig, tl.text)
			}
			if tl.tag != '-' {
				rev = append(rev, tl.text)
			}
		}
		return p.add(h, h.oldStart-1, orig, h.newStart-1, rev)
	}

	// Split the hunk at context lines, every run of changed lines becomes a delta.
	s, t := h.oldStart-1, h.newStart-1
	s0, t0 := s, t
	var del, ins []string
	for _, tl := range h.body {
		switch tl.tag {
		case ' ':
			if err := p.add(h, s0, del, t0, ins); err != nil {
				return err
			}
			del, ins = nil, nil
			s++
			t++
			s0, t0 = s, t
		case '-':
			del = append(del, tl.text)
			s++
		case '+':
			ins = append(ins, tl.text)
			t++
		}
	}
	return p.add(h, s0, del, t0, ins)
}

func (p *parser) add(h *hunk, s int, orig []string, t int, rev []string) error {
	if len(orig) == 0 && len(rev) == 0 {
		return nil
	}
	d := seqdiff.NewDelta(
		seqdiff.Chunk[string]{Position: s, Elements: orig},
		seqdiff.Chunk[string]{Position: t, Elements: rev},
	)
	if err := p.patch.Add(d); err != nil {
		return fmt.Errorf("hunk at line %d: %w", h.lineno, err)
	}
	return nil
}
