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
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrConflict is returned (wrapped in a [*ConflictError]) if a patch doesn't match the slice
	// it's applied to.
	ErrConflict = errors.New("patch conflict")

	// ErrOverlap is returned if a delta overlaps with a delta that's already part of a patch.
	ErrOverlap = errors.New("overlapping deltas")
)

// ConflictError reports that the original chunk of a delta doesn't match the slice a patch is
// applied to.
type ConflictError[T any] struct {
	Position int // Position of the original chunk.
	Expected []T // Elements of the original chunk.
	Actual   []T // Elements found at the position, possibly fewer than expected.
}

func (e *ConflictError[T]) Error() string {
	return fmt.Sprintf("%v at position %d: expected %v, found %v", ErrConflict, e.Position, e.Expected, e.Actual)
}

func (e *ConflictError[T]) Unwrap() error { return ErrConflict }

// Patch is an ordered collection of non-overlapping deltas that transforms an original slice into
// a revised slice.
//
// The zero value is an empty patch. A nil *Patch is treated as an empty patch as well.
type Patch[T any] struct {
	deltas []Delta[T]
}

// Add adds d to p. Deltas are kept in ascending order of their original position, a delta with an
// empty original chunk is ordered before a non-empty one at the same position.
//
// Add returns an error wrapping [ErrOverlap] if the original chunk of d overlaps with one of the
// deltas already in p.
func (p *Patch[T]) Add(d Delta[T]) error {
	if d.Original.Position < 0 || d.Revised.Position < 0 {
		return fmt.Errorf("invalid delta: negative position %d/%d", d.Original.Position, d.Revised.Position)
	}
	i := sort.Search(len(p.deltas), func(i int) bool {
		o := p.deltas[i].Original
		return o.Position > d.Original.Position || o.Position == d.Original.Position && o.End() > d.Original.End()
	})
	if i > 0 {
		if prev := p.deltas[i-1].Original; prev.Last() >= d.Original.Position {
			return fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap, prev.Position, prev.End(), d.Original.Position, d.Original.End())
		}
	}
	if i < len(p.deltas) {
		if next := p.deltas[i].Original; d.Original.Last() >= next.Position {
			return fmt.Errorf("%w: [%d, %d) and [%d, %d)", ErrOverlap, d.Original.Position, d.Original.End(), next.Position, next.End())
		}
	}
	p.deltas = slices.Insert(p.deltas, i, d)
	return nil
}

// Deltas returns the deltas of p in ascending order. The returned slice must not be modified.
func (p *Patch[T]) Deltas() []Delta[T] {
	if p == nil {
		return nil
	}
	return p.deltas[:len(p.deltas):len(p.deltas)]
}

// Len returns the number of deltas in p.
func (p *Patch[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.deltas)
}

// Empty reports whether p has no deltas.
func (p *Patch[T]) Empty() bool { return p.Len() == 0 }

// ApplyFunc applies p to x and returns the revised slice. Before a delta is applied, its original
// chunk is verified against x using eq. On the first mismatch, ApplyFunc stops and returns a
// [*ConflictError]. It never returns a partially patched result.
//
// Positions are always interpreted relative to x, x itself is not modified.
func (p *Patch[T]) ApplyFunc(x []T, eq func(a, b T) bool) ([]T, error) {
	if eq == nil {
		panic("seqdiff: ApplyFunc called with nil equality function")
	}
	deltas := p.Deltas()
	n := len(x)
	for _, d := range deltas {
		n += d.Revised.Size() - d.Original.Size()
	}
	out := make([]T, 0, max(0, n))
	s := 0 // cursor into x
	for _, d := range deltas {
		if err := d.VerifyFunc(x, eq); err != nil {
			return nil, err
		}
		out = append(out, x[s:d.Original.Position]...)
		out = append(out, d.Revised.Elements...)
		s = d.Original.End()
	}
	out = append(out, x[s:]...)
	return out, nil
}

// Apply applies p to x and returns the revised slice. See [Patch.ApplyFunc] for details.
func Apply[T comparable](p *Patch[T], x []T) ([]T, error) {
	return p.ApplyFunc(x, equal)
}

// Reverse returns a patch that transforms the revised slice back into the original slice.
func (p *Patch[T]) Reverse() *Patch[T] {
	deltas := p.Deltas()
	out := &Patch[T]{deltas: make([]Delta[T], len(deltas))}
	for i, d := range deltas {
		out.deltas[i] = d.reverse()
	}
	return out
}
