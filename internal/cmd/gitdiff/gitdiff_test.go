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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const hex = "0123456789abcdef0123456789abcdef01234567"

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{
			name: "text",
			old:  "a\nb\nc\n",
			new:  "a\nx\nc\n",
			want: `diff --git a/f b/f
index 0123456789..0123456789 100644
--- a/f
+++ b/f
@@ -1,3 +1,3 @@
 a
-b
+x
 c
`,
		},
		{
			name: "missing-newline",
			old:  "a\nb",
			new:  "a\nb\n",
			want: `diff --git a/f b/f
index 0123456789..0123456789 100644
--- a/f
+++ b/f
@@ -1,2 +1,2 @@
 a
-b
\ No newline at end of file
+b
`,
		},
		{
			name: "binary",
			old:  "ab\x00cd",
			new:  "ab\x00cX",
			want: `diff --git a/f b/f
index 0123456789..0123456789 100644
Binary files a/f and b/f differ at byte 4
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			oldFile, newFile := filepath.Join(dir, "old"), filepath.Join(dir, "new")
			if err := os.WriteFile(oldFile, []byte(tt.old), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(newFile, []byte(tt.new), 0o644); err != nil {
				t.Fatal(err)
			}
			var b strings.Builder
			if err := run(&b, []string{"gitdiff", "f", oldFile, hex, "100644", newFile, hex, "100644"}); err != nil {
				t.Fatalf("run(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, b.String()); diff != "" {
				t.Errorf("run(...) output is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRunArgs(t *testing.T) {
	if err := run(nil, []string{"gitdiff", "f"}); err == nil {
		t.Errorf("run(...) succeeded with too few arguments")
	}
}
