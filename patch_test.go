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

package seqdiff

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chunk(pos int, elems string) Chunk[string] {
	if elems == "" {
		return Chunk[string]{Position: pos}
	}
	return Chunk[string]{Position: pos, Elements: strings.Split(elems, "")}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		chunk     Chunk[string]
		size      int
		last, end int
	}{
		{chunk(0, ""), 0, -1, 0},
		{chunk(3, ""), 0, 2, 3},
		{chunk(0, "a"), 1, 0, 1},
		{chunk(2, "abc"), 3, 4, 5},
	}
	for _, tt := range tests {
		if got := tt.chunk.Size(); got != tt.size {
			t.Errorf("%v.Size() = %d, want %d", tt.chunk, got, tt.size)
		}
		if got := tt.chunk.Last(); got != tt.last {
			t.Errorf("%v.Last() = %d, want %d", tt.chunk, got, tt.last)
		}
		if got := tt.chunk.End(); got != tt.end {
			t.Errorf("%v.End() = %d, want %d", tt.chunk, got, tt.end)
		}
	}
}

func TestVerify(t *testing.T) {
	target := strings.Split("abcdef", "")
	tests := []struct {
		name    string
		chunk   Chunk[string]
		wantErr bool
	}{
		{"match", chunk(1, "bcd"), false},
		{"match-start", chunk(0, "a"), false},
		{"match-end", chunk(4, "ef"), false},
		{"empty", chunk(3, ""), false},
		{"empty-at-end", chunk(6, ""), false},
		{"mismatch", chunk(1, "bxd"), true},
		{"shifted", chunk(2, "bcd"), true},
		{"past-end", chunk(5, "fg"), true},
		{"empty-past-end", chunk(7, ""), true},
		{"negative", chunk(-1, "a"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.chunk, target)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("Verify(%v, ...) = %v, want error: %v", tt.chunk, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConflict) {
				t.Errorf("Verify(%v, ...) = %v, want error wrapping ErrConflict", tt.chunk, err)
			}
		})
	}
}

func TestVerifySensitivity(t *testing.T) {
	x := strings.Split("abcdefgh", "")
	y := strings.Split("abXYefZh", "")
	p := Diff(x, y)
	for _, d := range p.Deltas() {
		if err := d.VerifyFunc(x, equal); err != nil {
			t.Fatalf("VerifyFunc(...) on unmodified target failed: %v", err)
		}
		for i := d.Original.Position; i < d.Original.End(); i++ {
			modified := slices.Clone(x)
			modified[i] = "!"
			if err := d.VerifyFunc(modified, equal); err == nil {
				t.Errorf("VerifyFunc(...) succeeded after modifying element %d", i)
			}
		}
	}
}

func TestNewDelta(t *testing.T) {
	tests := []struct {
		original, revised Chunk[string]
		want              Kind
	}{
		{chunk(0, "a"), chunk(0, "b"), Change},
		{chunk(0, ""), chunk(0, "b"), Insert},
		{chunk(0, "a"), chunk(0, ""), Delete},
		{chunk(0, ""), chunk(0, ""), Change},
	}
	for _, tt := range tests {
		if got := NewDelta(tt.original, tt.revised).Kind; got != tt.want {
			t.Errorf("NewDelta(%v, %v).Kind = %v, want %v", tt.original, tt.revised, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{Change: "Change", Insert: "Insert", Delete: "Delete", Kind(7): "Kind(7)"} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestPatchAdd(t *testing.T) {
	tests := []struct {
		name    string
		deltas  []Delta[string]
		want    []int // original positions of the resulting deltas
		wantErr error
	}{
		{
			name: "in-order",
			deltas: []Delta[string]{
				NewDelta(chunk(0, "a"), chunk(0, "b")),
				NewDelta(chunk(2, "c"), chunk(2, "")),
			},
			want: []int{0, 2},
		},
		{
			name: "out-of-order",
			deltas: []Delta[string]{
				NewDelta(chunk(5, "f"), chunk(5, "")),
				NewDelta(chunk(0, "a"), chunk(0, "b")),
				NewDelta(chunk(2, "c"), chunk(2, "x")),
			},
			want: []int{0, 2, 5},
		},
		{
			name: "adjacent",
			deltas: []Delta[string]{
				NewDelta(chunk(1, "b"), chunk(1, "x")),
				NewDelta(chunk(0, "a"), chunk(0, "")),
			},
			want: []int{0, 1},
		},
		{
			name: "insert-before-delete",
			deltas: []Delta[string]{
				NewDelta(chunk(1, "b"), chunk(1, "")),
				NewDelta(chunk(1, ""), chunk(1, "x")),
			},
			want: []int{1, 1},
		},
		{
			name: "overlap",
			deltas: []Delta[string]{
				NewDelta(chunk(1, "bc"), chunk(1, "x")),
				NewDelta(chunk(2, "c"), chunk(2, "")),
			},
			wantErr: ErrOverlap,
		},
		{
			name: "overlap-before",
			deltas: []Delta[string]{
				NewDelta(chunk(2, "cd"), chunk(1, "x")),
				NewDelta(chunk(0, "abc"), chunk(0, "")),
			},
			wantErr: ErrOverlap,
		},
		{
			name: "insert-inside",
			deltas: []Delta[string]{
				NewDelta(chunk(1, "bcd"), chunk(1, "x")),
				NewDelta(chunk(2, ""), chunk(2, "y")),
			},
			wantErr: ErrOverlap,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Patch[string]
			var err error
			for _, d := range tt.deltas {
				if err = p.Add(d); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add(...) = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			var got []int
			for _, d := range p.Deltas() {
				got = append(got, d.Original.Position)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Deltas() positions differ [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	x := strings.Split("abcdef", "")
	var p Patch[string]
	for _, d := range []Delta[string]{
		NewDelta(chunk(0, ""), chunk(0, "XY")),
		NewDelta(chunk(1, "bc"), chunk(3, "Z")),
		NewDelta(chunk(5, "f"), chunk(6, "")),
	} {
		if err := p.Add(d); err != nil {
			t.Fatalf("Add(...) failed: %v", err)
		}
	}
	got, err := Apply(&p, x)
	if err != nil {
		t.Fatalf("Apply(...) failed: %v", err)
	}
	want := strings.Split("XYaZde", "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply(...) result is different [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(strings.Split("abcdef", ""), x); diff != "" {
		t.Errorf("Apply(...) modified its input [-want,+got]:\n%s", diff)
	}
}

func TestApplyEmptyPatch(t *testing.T) {
	x := []string{"a", "b"}
	for _, p := range []*Patch[string]{nil, {}} {
		if !p.Empty() {
			t.Errorf("Empty() = false for a patch without deltas")
		}
		got, err := Apply(p, x)
		if err != nil {
			t.Fatalf("Apply(...) failed: %v", err)
		}
		if diff := cmp.Diff(x, got); diff != "" {
			t.Errorf("Apply(...) result is different [-want,+got]:\n%s", diff)
		}
	}
}

func TestApplyConflict(t *testing.T) {
	x := strings.Split("abc", "")
	y := strings.Split("axc", "")
	p := Diff(x, y)

	stale := strings.Split("aqc", "")
	got, err := Apply(p, stale)
	if got != nil {
		t.Errorf("Apply(...) returned a partial result: %v", got)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Apply(...) = %v, want error wrapping ErrConflict", err)
	}
	var cerr *ConflictError[string]
	if !errors.As(err, &cerr) {
		t.Fatalf("Apply(...) = %T, want *ConflictError[string]", err)
	}
	want := &ConflictError[string]{Position: 1, Expected: []string{"b"}, Actual: []string{"q"}}
	if diff := cmp.Diff(want, cerr); diff != "" {
		t.Errorf("Apply(...) error is different [-want,+got]:\n%s", diff)
	}
	if msg := "patch conflict at position 1: expected [b], found [q]"; err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
}

func TestApplyConflictAborts(t *testing.T) {
	// The second delta conflicts. Nothing is returned even though the first delta applies.
	x := strings.Split("abcdef", "")
	p := Diff(x, strings.Split("aBcdeF", ""))
	if p.Len() != 2 {
		t.Fatalf("Diff(...) = %d deltas, want 2", p.Len())
	}
	got, err := Apply(p, strings.Split("abcdeG", ""))
	if err == nil || got != nil {
		t.Fatalf("Apply(...) = %v, %v, want conflict", got, err)
	}
	var cerr *ConflictError[string]
	if errors.As(err, &cerr) && cerr.Position != 5 {
		t.Errorf("conflict at position %d, want 5", cerr.Position)
	}
}

func TestReverse(t *testing.T) {
	x := strings.Split("abcd", "")
	y := strings.Split("aXcdY", "")
	p := Diff(x, y)
	r := p.Reverse()
	var kinds []Kind
	for _, d := range r.Deltas() {
		kinds = append(kinds, d.Kind)
	}
	if diff := cmp.Diff([]Kind{Change, Delete}, kinds); diff != "" {
		t.Errorf("Reverse() kinds differ [-want,+got]:\n%s", diff)
	}
	got, err := Apply(r, y)
	if err != nil {
		t.Fatalf("Apply(Reverse(...)) failed: %v", err)
	}
	if diff := cmp.Diff(x, got); diff != "" {
		t.Errorf("Apply(Reverse(...)) result is different [-want,+got]:\n%s", diff)
	}
}
