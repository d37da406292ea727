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

import "znkr.io/seqdiff/internal/rvecs"

// LCS compares x and y by filling the full longest common subsequence table. It always finds a
// minimal diff but needs O(NM) time and memory, where N and M are the sizes of the region that
// remains after stripping the common prefix and suffix.
func LCS[T any](x, y []T, eq func(a, b T) bool) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := findChangeBoundsFunc(x, y, eq)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	// lcs[i*w+j] is the length of the longest common subsequence of x[smin+i:smax] and
	// y[tmin+j:tmax]. Using suffixes allows us to walk the table front to back below.
	n, m := smax-smin, tmax-tmin
	w := m + 1
	lcs := make([]int32, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if eq(x[smin+i], y[tmin+j]) {
				lcs[i*w+j] = lcs[(i+1)*w+j+1] + 1
			} else {
				lcs[i*w+j] = max(lcs[(i+1)*w+j], lcs[i*w+j+1])
			}
		}
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case eq(x[smin+i], y[tmin+j]):
			i++
			j++
		case lcs[(i+1)*w+j] >= lcs[i*w+j+1]:
			rx[smin+i] = true // deletions before insertions
			i++
		default:
			ry[tmin+j] = true
			j++
		}
	}
	for ; i < n; i++ {
		rx[smin+i] = true
	}
	for ; j < m; j++ {
		ry[tmin+j] = true
	}
	return rx, ry
}
