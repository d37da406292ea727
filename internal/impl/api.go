// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package impl contains the diff algorithms. All of them compute result vectors (see
// internal/rvecs) that mark every deleted element of x and every inserted element of y.
package impl

import (
	"fmt"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/rvecs"
)

// Diff compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := findChangeBoundsFunc(x, y, equal)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	// Work on dense integer IDs instead of Ts. Mapping from T to an ID requires a map, this is why
	// this path is only available for comparable types.
	p := preprocess(rx, ry, smin, smax, tmin, tmax, x, y)

	switch cfg.Mode {
	case config.ModeMinimal:
		diffMinimal(rx, ry, p)

	case config.ModeDefault:
		diffDefault(rx, ry, p, cfg.ForceAnchoringHeuristic)

	case config.ModeFast:
		diffFast(rx, ry, p)

	default:
		panic(fmt.Sprintf("unknown mode: %v", cfg.Mode))
	}

	return rx, ry
}

// DiffFunc compares the contents of x and y using eq and returns the changes necessary to convert
// from one to the other.
//
// Note that this function has generally worse performance than [Diff] for diffs with many changes.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := findChangeBoundsFunc(x, y, eq)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	var m myers[T]
	m.rx, m.ry = rx, ry
	smin, smax, tmin, tmax = m.init(x, y, eq)
	m.compare(smin, smax, tmin, tmax, cfg.Mode == config.ModeMinimal)
	return rx, ry
}

func equal[T comparable](a, b T) bool { return a == b }

// findChangeBoundsFunc returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBoundsFunc[T any](x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds marks everything between the bounds as deleted or inserted if one side is
// empty. It returns true if there's nothing left to do.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin != tmax:
		return false
	case smin != smax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
	case tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
	}
	return true
}

// reduced is the problem after preprocessing.
//
//   - x0, y0:    the remaining elements of x[smin:smax] and y[tmin:tmax] as IDs
//   - xidx, yidx: x0[s] corresponds to x[xidx[s]], y0[t] to y[yidx[t]]
//   - counts:    occurrences of an ID, see preprocess
//   - nanchors:  number of IDs that occur exactly once in x0 and y0
type reduced struct {
	x0, y0     []int
	xidx, yidx []int
	counts     []int
	nanchors   int
}

// preprocess shrinks the problem and assigns a dense integer ID to every element.
//
// Elements that occur only in x or only in y are always deletions or insertions, they are marked in
// rx or ry right away and don't take part in the search. In practice, large diffs are dominated by
// such elements.
//
// Occurrences are counted as 0, 1, or many, using 0, 1, 2 for x and 0, 4, 8 for y. An ID with a
// count > 4 appears in both inputs and an ID with count 1+4 appears exactly once in both (an
// anchor).
func preprocess[T comparable](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T) reduced {
	n, m := smax-smin, tmax-tmin
	ids := make(map[T]int, n)
	buf := make([]int, 2*n+2*m)
	var p reduced
	p.x0, buf = buf[:0:n], buf[n:]
	p.xidx, buf = buf[:0:n], buf[n:]
	p.y0, buf = buf[:0:m], buf[m:]
	p.yidx = buf[:0:m]
	p.counts = make([]int, n)

	for _, e := range x[smin:smax] {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		if c := p.counts[id]; c < 2 {
			p.counts[id] = c + 1
		}
		p.x0 = append(p.x0, id)
	}

	for i, e := range y[tmin:tmax] {
		id, ok := ids[e]
		if !ok {
			ry[tmin+i] = true // not in x
			continue
		}
		if c := p.counts[id]; c < 8 {
			p.counts[id] = c + 4
		}
		p.yidx = append(p.yidx, tmin+i)
		p.y0 = append(p.y0, id)
	}

	// Drop everything from x0 that's not in y, x0 is compacted in place.
	k := 0
	for i, id := range p.x0 {
		c := p.counts[id]
		if c < 4 {
			rx[smin+i] = true // not in y
			continue
		}
		if c == 1+4 {
			p.nanchors++
		}
		p.xidx = append(p.xidx, smin+i)
		p.x0[k] = id
		k++
	}
	p.x0 = p.x0[:k]
	return p
}

func (p *reduced) myers(rx, ry []bool) (m myers[int], smin, smax, tmin, tmax int) {
	m.xidx, m.yidx = p.xidx, p.yidx
	m.rx, m.ry = rx, ry
	smin, smax, tmin, tmax = m.init(p.x0, p.y0, equal[int])
	return
}

func diffMinimal(rx, ry []bool, p reduced) {
	m, smin, smax, tmin, tmax := p.myers(rx, ry)
	m.compare(smin, smax, tmin, tmax, true)
}

func diffDefault(rx, ry []bool, p reduced, forceAnchoring bool) {
	m, smin, smax, tmin, tmax := p.myers(rx, ry)

	// Heuristic (ANCHORING): Split large inputs at anchors and only run Myers' algorithm on the
	// segments in between.
	anchoring := p.nanchors > 0 && (smax-smin)+(tmax-tmin) > anchoringHeuristicMinInputLen
	if !anchoring && !forceAnchoring {
		m.compare(smin, smax, tmin, tmax, false)
		return
	}
	for gap := range gaps(smin, smax, tmin, tmax, p) {
		m.compare(gap.s0, gap.s1, gap.t0, gap.t1, false)
	}
}

func diffFast(rx, ry []bool, p reduced) {
	smin, smax, tmin, tmax := findChangeBoundsFunc(p.x0, p.y0, equal[int])
	for gap := range gaps(smin, smax, tmin, tmax, p) {
		for s := gap.s0; s < gap.s1; s++ {
			rx[p.xidx[s]] = true
		}
		for t := gap.t0; t < gap.t1; t++ {
			ry[p.yidx[t]] = true
		}
	}
}
