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

// Package binarydiff finds the first difference between two byte streams.
package binarydiff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// EOF is reported instead of a byte value for a stream that ended before the other one.
const EOF = -1

// Difference describes the first position at which two streams differ.
type Difference struct {
	Offset   int64 // Zero-based byte offset
	Expected int   // Byte in the expected stream, or EOF
	Actual   int   // Byte in the actual stream, or EOF
}

func (d *Difference) String() string {
	return fmt.Sprintf("streams differ at offset %d: expected %s, actual %s", d.Offset, byteString(d.Expected), byteString(d.Actual))
}

func byteString(b int) string {
	if b == EOF {
		return "EOF"
	}
	return fmt.Sprintf("0x%02x", b)
}

// Compare reads actual and expected in lock-step and returns the first difference, or nil if both
// streams have the same content. Only a small buffer is held in memory. Closing the readers is
// left to the caller.
func Compare(actual, expected io.Reader) (*Difference, error) {
	a, e := bufio.NewReader(actual), bufio.NewReader(expected)
	for off := int64(0); ; off++ {
		ab, err := next(a)
		if err != nil {
			return nil, fmt.Errorf("reading actual stream at offset %d: %w", off, err)
		}
		eb, err := next(e)
		if err != nil {
			return nil, fmt.Errorf("reading expected stream at offset %d: %w", off, err)
		}
		if ab != eb {
			return &Difference{Offset: off, Expected: eb, Actual: ab}, nil
		}
		if ab == EOF {
			return nil, nil
		}
	}
}

func next(r io.ByteReader) (int, error) {
	b, err := r.ReadByte()
	if errors.Is(err, io.EOF) {
		return EOF, nil
	}
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

// CompareFiles compares the contents of two files, see [Compare].
func CompareFiles(actualPath, expectedPath string) (*Difference, error) {
	actual, err := os.Open(actualPath)
	if err != nil {
		return nil, err
	}
	defer actual.Close()

	expected, err := os.Open(expectedPath)
	if err != nil {
		return nil, err
	}
	defer expected.Close()

	return Compare(actual, expected)
}
