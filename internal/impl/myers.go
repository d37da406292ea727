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

package impl

import "math"

// minCostLimit is a lower bound for the TOO_EXPENSIVE heuristic. That is the heuristic is only
// applied when the cost exceeds this number (large inputs with a lot of differences).
const minCostLimit = 4096

// anchoringHeuristicMinInputLen is the minimum input length for the ANCHORING heuristic.
const anchoringHeuristicMinInputLen = 5_000

// myers implements the linear space variant of Myers' algorithm (section 4.2 of the paper).
//
// The search runs on the edit graph of x and y: s is the horizontal coordinate (position in x), t
// is the vertical coordinate (position in y), and diagonal k contains all points with s - t = k. A
// step right deletes x[s], a step down inserts y[t], and a diagonal step matches x[s] and y[t]. A
// d-path is a path with d non-diagonal steps.
//
// Without the TOO_EXPENSIVE heuristic, the runtime is O((N+M)D) and memory usage is O(N+M).
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
type myers[T any] struct {
	x, y []T
	eq   func(a, b T) bool

	// Furthest reaching s-coordinate of the forward (vf) and backward (vb) d-paths on diagonal k is
	// stored at index v0+k. There are two extra elements to cover the borders of the search.
	vf, vb []int
	v0     int

	// If the search for a middle snake exceeds this cost, the best path found so far is used.
	costLimit int

	// xidx and yidx map positions in x and y to positions in rx and ry.
	xidx, yidx []int
	rx, ry     []bool
}

// init prepares m to compare x and y and returns the bounds of the region that differs.
func (m *myers[T]) init(x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, smax, tmin, tmax = findChangeBoundsFunc(x, y, eq)

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3
	buf := make([]int, 2*vlen)

	m.x, m.y, m.eq = x, y, eq
	m.vf, m.vb = buf[:vlen], buf[vlen:]
	m.v0 = diagonals + 1

	// Approximate square root of the number of diagonals.
	costLimit := 1
	for i := diagonals; i != 0; i >>= 2 {
		costLimit <<= 1
	}
	m.costLimit = max(minCostLimit, costLimit)

	if m.xidx == nil || m.yidx == nil {
		idx := make([]int, max(len(x), len(y)))
		for i := range idx {
			idx[i] = i
		}
		m.xidx, m.yidx = idx[:len(x)], idx[:len(y)]
	}
	return
}

// compare marks the edits of a (close to) optimal path from (smin, tmin) to (smax, tmax).
func (m *myers[T]) compare(smin, smax, tmin, tmax int, optimal bool) {
	x, y, eq := m.x, m.y, m.eq
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			m.ry[m.yidx[t]] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			m.rx[m.xidx[s]] = true
		}
	default:
		// The middle snake (s0, t0) -> (s1, t1) splits the problem into two rectangles.
		s0, s1, t0, t1, opt0, opt1 := m.split(smin, smax, tmin, tmax, optimal)
		m.compare(smin, s0, tmin, t0, opt0)
		m.compare(s1, smax, t1, tmax, opt1)
	}
}

// split finds the middle snake of an optimal path from (smin, tmin) to (smax, tmax). The returned
// booleans report whether the path to the left and right of the snake still needs to be optimal.
//
// x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and they may not
// both be empty.
func (m *myers[T]) split(smin, smax, tmin, tmax int, optimal bool) (s0, s1, t0, t1 int, opt0, opt1 bool) {
	x, y, eq := m.x, m.y, m.eq
	vf, vb, v0 := m.vf, m.vb, m.v0

	// Valid diagonals for this rectangle. Forward paths start on diagonal fmid, backward paths on
	// bmid. Both searches use the same numbering of diagonals so that no conversion is needed to
	// detect an overlap.
	kmin, kmax := smin-tmax, smax-tmin
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// A D-path ends on a diagonal with the same parity as D. Overlap can only be found in the
	// forward pass if delta is odd and only in the backward pass if delta is even.
	odd := (fmid-bmid)%2 != 0

	// There's no common prefix or suffix, so the 0-paths don't leave their start points.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	for d := 1; ; d++ {
		// Extend the range of forward diagonals by one if possible, otherwise shrink it to stay
		// inside the rectangle. The borders are initialized so that they never win a comparison.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			i := v0 + k
			var s int
			if vf[i-1] < vf[i+1] {
				s = vf[i+1] // down from diagonal k+1
			} else {
				s = vf[i-1] + 1 // right from diagonal k-1, deletions before insertions
			}
			t := s - k
			sstart, tstart := s, t
			for s < smax && t < tmax && eq(x[s], y[t]) {
				s++
				t++
			}
			vf[i] = s
			if odd && bmin <= k && k <= bmax && s >= vb[i] {
				return sstart, s, tstart, t, true, true
			}
		}

		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			i := v0 + k
			var s int
			if vb[i-1] < vb[i+1] {
				s = vb[i-1] // up from diagonal k-1
			} else {
				s = vb[i+1] - 1 // left from diagonal k+1
			}
			t := s - k
			send, tend := s, t
			for s > smin && t > tmin && eq(x[s-1], y[t-1]) {
				s--
				t--
			}
			vb[i] = s
			if !odd && fmin <= k && k <= fmax && s <= vf[i] {
				return s, send, t, tend, true, true
			}
		}

		if !optimal && d >= m.costLimit {
			if s0, s1, t0, t1, opt0, opt1, ok := m.tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax); ok {
				return s0, s1, t0, t1, opt0, opt1
			}
		}
	}
}

// tooExpensive implements the TOO_EXPENSIVE heuristic by Paul Eggert: Instead of continuing the
// search, pick the furthest reaching forward or backward path that got closest to the opposite
// corner and use its last snake as the split point. The side that was not searched to the end
// loses optimality. It reports false if no path ends inside the rectangle yet.
func (m *myers[T]) tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, opt0, opt1, ok bool) {
	vf, vb, v0 := m.vf, m.vb, m.v0

	fbest, fbestk := math.MinInt, 0
	for k := fmin; k <= fmax; k += 2 {
		s := vf[v0+k]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
			fbest, fbestk = s+t, k
		}
	}

	bbest, bbestk := math.MaxInt, 0
	for k := bmin; k <= bmax; k += 2 {
		s := vb[v0+k]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
			bbest, bbestk = s+t, k
		}
	}

	fok, bok := fbest != math.MinInt, bbest != math.MaxInt
	if !fok && !bok {
		return 0, 0, 0, 0, false, false, false
	}

	if fok && (!bok || (smax+tmax)-bbest < fbest-(smin+tmin)) {
		// Reconstruct the snake by repeating the decision of the forward pass.
		k := fbestk
		s := vf[v0+k]
		t := s - k
		pk := k - 1
		if vf[v0+k-1] < vf[v0+k+1] {
			pk = k + 1
		}
		ps := vf[v0+pk]
		pt := ps - pk
		diag := min(s-ps, t-pt)
		return s - diag, s, t - diag, t, true, false, true
	}

	k := bbestk
	s := vb[v0+k]
	t := s - k
	pk := k + 1
	if vb[v0+k-1] < vb[v0+k+1] {
		pk = k - 1
	}
	ps := vb[v0+pk]
	pt := ps - pk
	diag := min(ps-s, pt-t)
	return s, s + diag, t, t + diag, false, true, true
}
