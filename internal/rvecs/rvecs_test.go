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

package rvecs

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// vectors builds result vectors from a string of M (match), D (delete), and I (insert) operations.
func vectors(ops string) (rx, ry []bool) {
	var n, m int
	for _, op := range ops {
		switch op {
		case 'M':
			n++
			m++
		case 'D':
			n++
		case 'I':
			m++
		}
	}
	rx, ry = Make(make([]struct{}, n), make([]struct{}, m))
	s, t := 0, 0
	for _, op := range ops {
		switch op {
		case 'M':
			s++
			t++
		case 'D':
			rx[s] = true
			s++
		case 'I':
			ry[t] = true
			t++
		}
	}
	return rx, ry
}

func TestSpans(t *testing.T) {
	tests := []struct {
		name string
		ops  string
		want []Span
	}{
		{
			name: "empty",
			ops:  "",
			want: nil,
		},
		{
			name: "identical",
			ops:  "MMM",
			want: nil,
		},
		{
			name: "x-empty",
			ops:  "III",
			want: []Span{{0, 0, 0, 3}},
		},
		{
			name: "y-empty",
			ops:  "DDD",
			want: []Span{{0, 3, 0, 0}},
		},
		{
			name: "ABCABBA_to_CBABAC",
			ops:  "DIMDMMDMI",
			want: []Span{
				{0, 1, 0, 1},
				{2, 3, 2, 2},
				{5, 6, 4, 4},
				{7, 7, 5, 6},
			},
		},
		{
			name: "interleaved",
			ops:  "MDIDIM",
			want: []Span{{1, 3, 1, 3}},
		},
		{
			name: "insert-then-delete",
			ops:  "IIDM",
			want: []Span{{0, 1, 0, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := vectors(tt.ops)
			got := slices.Collect(Spans(rx, ry))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Spans(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestSpansStop(t *testing.T) {
	rx, ry := vectors("DMDMD")
	n := 0
	for range Spans(rx, ry) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("Spans(...) yielded %d spans after break, want 1", n)
	}
}
