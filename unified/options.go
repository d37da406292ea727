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

package unified

import (
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/config"
)

// Strict makes [Parse] reject malformed input with a [*SyntaxError]. Without it, lines that look
// like hunk headers but don't match the header syntax are dropped, as are changed lines outside of
// a hunk.
//
// In strict mode, the line counts in every hunk header must match the hunk body, too.
func Strict() seqdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Strict = true
		return config.Strict
	}
}

// WholeHunks makes [Parse] create a single delta for every hunk, with all context lines included
// in the original and revised chunks. By default, hunks are split at context lines so that every
// delta only covers changed lines.
func WholeHunks() seqdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.WholeHunks = true
		return config.WholeHunks
	}
}
