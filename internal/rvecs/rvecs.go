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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's produced by the diff algorithms and is then translated to deltas.
//
// For inputs x and y, rx[s] is true if x[s] is deleted and ry[t] is true if y[t] is inserted. Both
// vectors carry one extra element at the end that is always false. This border makes it possible
// to scan the vectors without bounds checks.
package rvecs

import "iter"

// Make allocates result vectors for x and y with a single allocation.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Span describes a maximal run of deletions and insertions that is framed by matches or by the
// start and end of the inputs.
type Span struct {
	S0, S1 int // Start and end of the span in x.
	T0, T1 int // Start and end of the span in y.
}

// Spans returns all spans in rx and ry in ascending order.
func Spans(rx, ry []bool) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		n, m := len(rx)-1, len(ry)-1
		s, t := 0, 0
		for s < n || t < m {
			if !rx[s] && !ry[t] {
				s++
				t++
				continue
			}
			s0, t0 := s, t
			for rx[s] || ry[t] {
				for rx[s] {
					s++
				}
				for ry[t] {
					t++
				}
			}
			if !yield(Span{s0, s, t0, t}) {
				return
			}
		}
	}
}
