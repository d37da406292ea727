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

// gitdiff is a tool that can be used with git using GIT_EXTERNAL_DIFF.
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff HEAD~1
//
// Text files are compared line by line and printed in unified format. Binary files (files that
// contain a NUL byte) are compared byte by byte and only the offset of the first difference is
// reported. The number of context lines can be changed with GITDIFF_CONTEXT.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"znkr.io/seqdiff"
	"znkr.io/seqdiff/binarydiff"
	"znkr.io/seqdiff/unified"
)

const missingNewline = "\n\\ No newline at end of file"

func main() {
	if err := run(os.Stdout, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	if len(args) < 8 {
		return fmt.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}
	path, oldFile, oldHex, _, newFile, newHex, newMode := args[1], args[2], args[3], args[4], args[5], args[6], args[7]

	context := 3
	if s := os.Getenv("GITDIFF_CONTEXT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid GITDIFF_CONTEXT: %v", err)
		}
		context = n
	}

	old, err := readFile(oldFile)
	if err != nil {
		return err
	}
	new, err := readFile(newFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(w, "index %s..%s %s\n", short(oldHex), short(newHex), newMode)

	if bytes.IndexByte(old, 0) >= 0 || bytes.IndexByte(new, 0) >= 0 {
		d, err := binarydiff.Compare(bytes.NewReader(new), bytes.NewReader(old))
		if err != nil {
			return err
		}
		if d != nil {
			fmt.Fprintf(w, "Binary files a/%s and b/%s differ at byte %d\n", path, path, d.Offset)
		}
		return nil
	}

	out := unified.Unified("a/"+path, "b/"+path, lines(old), lines(new), seqdiff.Context(context))
	for _, line := range out {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func readFile(name string) ([]byte, error) {
	if name == "/dev/null" {
		return nil, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", name, err)
	}
	return b, nil
}

// lines splits b into lines. If the last line has no line ending, the missing newline marker is
// attached to it. It's printed on the next line and makes the line differ from one that ends with
// a newline.
func lines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	if strings.HasSuffix(s, "\n") {
		return strings.Split(s[:len(s)-1], "\n")
	}
	l := strings.Split(s, "\n")
	l[len(l)-1] += missingNewline
	return l
}

func short(hex string) string {
	return hex[:min(len(hex), 10)]
}
