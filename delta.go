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

// Kind describes the kind of edit a [Delta] performs.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Change Kind = iota // Original elements are replaced by revised elements
	Insert             // Revised elements are inserted, the original chunk is empty
	Delete             // Original elements are removed, the revised chunk is empty
)

// Delta is an atomic edit that turns the Original chunk into the Revised chunk.
//
//   - For Insert, Original is empty and marks the insertion point.
//   - For Delete, Revised is empty and marks the position in the revised slice.
//   - For Change, both chunks are non-empty.
type Delta[T any] struct {
	Kind     Kind
	Original Chunk[T]
	Revised  Chunk[T]
}

// NewDelta returns a delta that turns original into revised. The kind is derived from the chunk
// sizes: Insert if original is empty, Delete if revised is empty, and Change otherwise. Two empty
// chunks result in a Change that doesn't change anything.
func NewDelta[T any](original, revised Chunk[T]) Delta[T] {
	kind := Change
	switch {
	case original.Size() == 0 && revised.Size() > 0:
		kind = Insert
	case original.Size() > 0 && revised.Size() == 0:
		kind = Delete
	}
	return Delta[T]{Kind: kind, Original: original, Revised: revised}
}

// VerifyFunc checks that the original chunk of d matches target using eq.
func (d Delta[T]) VerifyFunc(target []T, eq func(a, b T) bool) error {
	return d.Original.VerifyFunc(target, eq)
}

// reverse returns the delta that undoes d.
func (d Delta[T]) reverse() Delta[T] {
	return NewDelta(d.Revised, d.Original)
}
