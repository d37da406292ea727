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

// Package seqdiff computes the difference between two slices and represents it as a [Patch] that
// can be applied to the original slice to obtain the revised one.
//
// A [Patch] is an ordered list of non-overlapping [Delta] values. Every delta replaces a [Chunk]
// of the original slice with a chunk of the revised slice. Deltas are computed by an [Algorithm];
// [Diff] and [DiffFunc] use Myers' algorithm, [LCS] offers a simple table based alternative.
//
// Performance: By default, [Diff] runs in O(N^1.5 log N) time and O(N) space. With [Minimal], time
// complexity is O(ND) where N = len(x) + len(y) and D is the number of edits. With [Fast], time
// complexity is O(N log N). [LCS] always needs O(NM) time and space.
//
// Note: For unified diff text, please see [znkr.io/seqdiff/unified].
//
// [znkr.io/seqdiff/unified]: https://pkg.go.dev/znkr.io/seqdiff/unified
package seqdiff
