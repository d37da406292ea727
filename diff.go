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
	"slices"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/impl"
	"znkr.io/seqdiff/internal/rvecs"
)

// Algorithm is a strategy to compute the difference between two slices.
//
// Implementations must return a patch that transforms x into y when applied to x. Elements are
// compared using eq.
type Algorithm[T any] interface {
	Diff(x, y []T, eq func(a, b T) bool) *Patch[T]
}

// Myers returns an [Algorithm] based on Myers' O(ND) algorithm.
//
// The following option is supported: [seqdiff.Minimal]
func Myers[T any](opts ...Option) Algorithm[T] {
	return myersAlgorithm[T]{config.FromOptions(opts, config.Minimal)}
}

type myersAlgorithm[T any] struct {
	cfg config.Config
}

func (a myersAlgorithm[T]) Diff(x, y []T, eq func(a, b T) bool) *Patch[T] {
	rx, ry := impl.DiffFunc(x, y, eq, a.cfg)
	return patch(x, y, rx, ry)
}

// LCS returns an [Algorithm] that fills the complete longest common subsequence table. The result
// is always minimal, but it needs O(NM) time and memory. It's only suitable for small inputs.
func LCS[T any]() Algorithm[T] {
	return lcsAlgorithm[T]{}
}

type lcsAlgorithm[T any] struct{}

func (lcsAlgorithm[T]) Diff(x, y []T, eq func(a, b T) bool) *Patch[T] {
	rx, ry := impl.LCS(x, y, eq)
	return patch(x, y, rx, ry)
}

// Diff compares the contents of x and y and returns a patch that transforms x into y.
//
// Every delta in the patch covers a maximal run of changes between two matching elements. If x
// and y are identical, the patch is empty.
//
// The following options are supported: [seqdiff.Minimal], [seqdiff.Fast]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff[T comparable](x, y []T, opts ...Option) *Patch[T] {
	cfg := config.FromOptions(opts, config.Minimal|config.Fast)
	rx, ry := impl.Diff(x, y, cfg)
	return patch(x, y, rx, ry)
}

// DiffFunc compares the contents of x and y using the provided equality comparison and returns a
// patch that transforms x into y.
//
// The following option is supported: [seqdiff.Minimal]
//
// Note that this function has generally worse performance than [Diff] for diffs with many changes.
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) *Patch[T] {
	return DiffWith(Myers[T](opts...), x, y, eq)
}

// DiffWith compares x and y using alg and eq. It panics if alg or eq is nil.
func DiffWith[T any](alg Algorithm[T], x, y []T, eq func(a, b T) bool) *Patch[T] {
	if alg == nil {
		panic("seqdiff: DiffWith called with nil algorithm")
	}
	if eq == nil {
		panic("seqdiff: DiffWith called with nil equality function")
	}
	return alg.Diff(x, y, eq)
}

// patch converts result vectors into a patch. Chunks get their own copies of the elements.
func patch[T any](x, y []T, rx, ry []bool) *Patch[T] {
	p := &Patch[T]{}
	for span := range rvecs.Spans(rx, ry) {
		// Spans are ordered and disjoint, there's no need to go through Add.
		p.deltas = append(p.deltas, NewDelta(
			Chunk[T]{Position: span.S0, Elements: slices.Clone(x[span.S0:span.S1])},
			Chunk[T]{Position: span.T0, Elements: slices.Clone(y[span.T0:span.T1])},
		))
	}
	return p
}
