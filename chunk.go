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

// Chunk is a contiguous span of elements from one side of a comparison.
//
// Chunks are values. The functions in this module never modify Elements and callers should not
// either.
type Chunk[T any] struct {
	Position int // Zero-based start index, never negative.
	Elements []T
}

// Size returns the number of elements in c.
func (c Chunk[T]) Size() int { return len(c.Elements) }

// Last returns the index of the last element of c. For an empty chunk, this is Position-1.
func (c Chunk[T]) Last() int { return c.Position + len(c.Elements) - 1 }

// End returns the index one past the last element of c.
func (c Chunk[T]) End() int { return c.Position + len(c.Elements) }

// VerifyFunc checks that target[c.Position:c.End()] equals c.Elements using eq. It returns a
// [*ConflictError] if the elements differ or if target is too short.
func (c Chunk[T]) VerifyFunc(target []T, eq func(a, b T) bool) error {
	start := min(max(c.Position, 0), len(target))
	end := max(start, min(c.End(), len(target)))
	actual := target[start:end]
	if c.Position < 0 || c.Position > len(target) || end-start != len(c.Elements) {
		return &ConflictError[T]{Position: c.Position, Expected: c.Elements, Actual: actual}
	}
	for i, e := range c.Elements {
		if !eq(e, actual[i]) {
			return &ConflictError[T]{Position: c.Position, Expected: c.Elements, Actual: actual}
		}
	}
	return nil
}

// Verify checks that target[c.Position:c.End()] equals c.Elements. It returns a [*ConflictError]
// if the elements differ or if target is too short.
func Verify[T comparable](c Chunk[T], target []T) error {
	return c.VerifyFunc(target, equal)
}

func equal[T comparable](a, b T) bool { return a == b }
