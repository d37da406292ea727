// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git provides a simplified git interface for reading a repository for evaluations
package git

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// NullID is the blob id git reports for a file that doesn't exist on one side of a change.
const NullID = "0000000000000000000000000000000000000000"

type Repo struct {
	dir string

	mu  sync.Mutex // guards the cat-file process
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

// Open opens the repository in dir. The repository must be closed to stop the background git
// process.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to connect stdin: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to connect stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}
	return &Repo{dir: dir, cmd: cmd, in: in, out: bufio.NewReader(out)}, nil
}

func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Close()
	return r.cmd.Wait()
}

func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := git(ctx, "-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed by commit.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileDiff, error) {
	out, err := git(ctx, "-C", r.dir, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	return parseDiffTree(out)
}

func parseDiffTree(out string) ([]FileDiff, error) {
	lines := strings.Split(out, "\n")[1:] // the first line is the commit id
	ret := make([]FileDiff, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree file not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line has %d fields, expected 6: %q", len(fields), line)
		}
		ret = append(ret, FileDiff{
			Name:  fields[5],
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// Read returns the content of a blob. The content of NullID is empty.
func (r *Repo) Read(id string) (string, error) {
	if id == NullID {
		return "", nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintf(r.in, "%s\n", id); err != nil {
		return "", fmt.Errorf("writing to stdin pipe: %v", err)
	}
	line, err := r.out.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading cat-file header: %v", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", fmt.Errorf("found %v fields, expected 3: %q", len(fields), line)
	}
	if fields[0] != id {
		return "", fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n+1) // content is followed by a newline
	if _, err := io.ReadFull(r.out, buf); err != nil {
		return "", fmt.Errorf("reading blob %s: %v", id, err)
	}
	return string(buf[:n]), nil
}

func git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}
