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
//
// The segments function is derived from Go's src/internal/diff/diff.go
// which has the following copyright and license:
//
// Copyright 2022 The Go Authors. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
//    * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//    * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
//    * Neither the name of Google LLC nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package impl

import (
	"iter"
	"sort"
)

type pair struct{ s, t int }

// gap is a region between two runs of matches around anchors.
type gap struct{ s0, s1, t0, t1 int }

// gaps splits x0[smin:smax] and y0[tmin:tmax] at the longest common subsequence of anchors. Every
// anchor is grown into the longest run of matches around it, the regions in between are returned.
// Gaps neither share a common prefix nor a common suffix.
func gaps(smin, smax, tmin, tmax int, p reduced) iter.Seq[gap] {
	return func(yield func(gap) bool) {
		x0, y0 := p.x0, p.y0
		anchors := segments(smin, smax, tmin, tmax, p.nanchors, p.counts, x0, y0)
		done := anchors[0]
		for _, anchor := range anchors[1:] {
			if anchor.s < done.s {
				// Already covered by the run of matches around an earlier anchor.
				continue
			}

			start := anchor
			for start.s > done.s && start.t > done.t && x0[start.s-1] == y0[start.t-1] {
				start.s--
				start.t--
			}
			end := anchor
			for end.s < smax && end.t < tmax && x0[end.s] == y0[end.t] {
				end.s++
				end.t++
			}

			if !yield(gap{done.s, start.s, done.t, start.t}) {
				return
			}
			if end.s >= smax && end.t >= tmax {
				return
			}
			done = end
		}
	}
}

// segments returns the pairs of indexes of the longest common subsequence of anchors in x and y,
// framed by the sentinels {smin, tmin} and {smax, tmax}.
//
// The longest common subsequence algorithm is as described in Thomas G. Szymanski, “A Special Case
// of the Maximal Common Subsequence Problem,” Princeton TR #170 (January 1975), available at
// https://research.swtch.com/tgs170.pdf.
func segments(smin, smax, tmin, tmax int, nanchors int, counts []int, x, y []int) []pair {
	idx := make(map[int]int, nanchors)
	buf := make([]int, 3*nanchors)
	xi, yi, inv := buf[:0:nanchors], buf[nanchors:nanchors:2*nanchors], buf[2*nanchors:2*nanchors]

	//	xi[i] = increasing indexes of anchors in x.
	//	yi[i] = increasing indexes of anchors in y.
	//	inv[i] = index j such that x[xi[i]] = y[yi[j]].
	for t := tmin; t < tmax; t++ {
		if e := y[t]; counts[e] == 1+4 {
			idx[e] = len(yi)
			yi = append(yi, t)
		}
	}
	for s := smin; s < smax; s++ {
		if e := x[s]; counts[e] == 1+4 {
			xi = append(xi, s)
			inv = append(inv, idx[e])
		}
	}

	// Algorithm A from Szymanski's paper with A = J = inv and B = [0, n).
	J := inv
	n := len(xi)
	T := make([]int, n)
	L := make([]int, n)
	for i := range T {
		T[i] = n + 1
	}
	for i := range n {
		k := sort.Search(n, func(k int) bool {
			return T[k] >= J[i]
		})
		T[k] = J[i]
		L[i] = k + 1
	}
	k := 0
	for _, v := range L {
		k = max(k, v)
	}
	anchors := make([]pair, 2+k)
	anchors[0] = pair{smin, tmin}
	anchors[1+k] = pair{smax, tmax}
	lastj := n
	for i := n - 1; i >= 0; i-- {
		if L[i] == k && J[i] < lastj {
			anchors[k] = pair{xi[i], yi[J[i]]}
			lastj = J[i]
			k--
		}
	}
	return anchors
}
