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

// eval validates the diff and patch implementation against the history of a git repository.
//
// For every file changed by a commit, the old and new version are diffed with every algorithm
// variant and the result is checked by round-tripping it:
//
//   - the patch is applied to the old version,
//   - the patch is formatted as a unified diff, parsed again, and applied to the old version,
//   - optionally, the unified diff is applied with the unix patch tool.
//
// All of them must produce the new version.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/cmd/eval/internal/git"
	"znkr.io/seqdiff/internal/unixpatch"
	"znkr.io/seqdiff/unified"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	validate bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", false, "if validation with the unix patch tool should be performed")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(context.Background(), &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

var variants = []struct {
	name string
	opts []seqdiff.Option
}{
	{"default", nil},
	{"minimal", []seqdiff.Option{seqdiff.Minimal()}},
	{"fast", []seqdiff.Option{seqdiff.Fast()}},
}

type change struct {
	commitID string
	filename string
	old, new []string
}

type result struct {
	commitID string
	file     string
	variant  string
	N, M     int
	D        int
	duration time.Duration
}

func run(ctx context.Context, cfg *config) error {
	if cfg.validate && !unixpatch.Available() {
		return fmt.Errorf("-validate requires the patch tool")
	}

	start := time.Now()
	var commitsDone, processed, failures atomic.Int64

	repo, err := git.Open(ctx, cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}
	defer repo.Close()

	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		return fmt.Errorf("reading rev-list: %v", err)
	}
	commitIDs = sample(commitIDs, cfg.sample)

	var stats *bufio.Writer
	if cfg.stats != "" {
		f, err := os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer f.Close()
		stats = bufio.NewWriter(f)
		stats.WriteString("commit_id,file,variant,N,M,D,duration_ns\n")
	}

	notes := make(chan string)
	results := make(chan result)
	changes := make(chan change)

	g, ctx := errgroup.WithContext(ctx)

	// Read changes.
	g.Go(func() error {
		defer close(changes)
		for _, commitID := range commitIDs {
			files, err := repo.DiffTree(ctx, commitID)
			if err != nil {
				return fmt.Errorf("processing commit %s: %v", commitID, err)
			}
			for _, file := range files {
				if strings.HasSuffix(file.Name, ".zip") || strings.HasSuffix(file.Name, ".syso") {
					continue
				}
				old, err := repo.Read(file.OldID)
				if err != nil {
					return err
				}
				new, err := repo.Read(file.NewID)
				if err != nil {
					return err
				}
				select {
				case changes <- change{commitID, file.Name, lines(old), lines(new)}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			commitsDone.Add(1)
		}
		return nil
	})

	// Evaluate changes.
	workers, wctx := errgroup.WithContext(ctx)
	for range max(1, cfg.parallel) {
		workers.Go(func() error {
			for c := range changes {
				for _, v := range variants {
					res, msgs := evaluate(wctx, c, v.name, v.opts, cfg.validate)
					for _, msg := range msgs {
						failures.Add(1)
						notes <- c.commitID + ":" + c.filename + ": " + v.name + ": " + msg
					}
					results <- res
				}
				processed.Add(1)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Write stats and render progress.
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := float64(commits) / float64(max(1, len(commitIDs)))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
	}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for done := false; !done; {
		select {
		case msg := <-notes:
			fmt.Printf("\r%s\n", msg)
			render()
		case res, ok := <-results:
			if !ok {
				done = true
				break
			}
			if stats != nil {
				fmt.Fprintf(stats, "%s,%s,%s,%d,%d,%d,%d\n", res.commitID, res.file, res.variant, res.N, res.M, res.D, res.duration.Nanoseconds())
			}
		case <-ticker.C:
			render()
		}
	}
	render()
	fmt.Println()

	if err := g.Wait(); err != nil {
		return err
	}
	if stats != nil {
		if err := stats.Flush(); err != nil {
			return fmt.Errorf("failed to flush stats: %v", err)
		}
	}
	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d evaluations failed", n)
	}
	return nil
}

// evaluate diffs c with opts and checks all round trips. It returns statistics for the diff and a
// message for every failed check.
func evaluate(ctx context.Context, c change, variant string, opts []seqdiff.Option, validate bool) (result, []string) {
	var msgs []string
	check := func(what string, got []string, err error) {
		switch {
		case err != nil:
			msgs = append(msgs, fmt.Sprintf("%s: %v", what, err))
		case !slices.Equal(c.new, got):
			msgs = append(msgs, fmt.Sprintf("%s: result is different from the new version", what))
		}
	}

	start := time.Now()
	p := seqdiff.Diff(c.old, c.new, opts...)
	duration := time.Since(start)

	got, err := seqdiff.Apply(p, c.old)
	check("apply", got, err)

	out := unified.Format("a/"+c.filename, "b/"+c.filename, c.old, p, 3)
	parsed, err := unified.Parse(out, unified.Strict())
	if err != nil {
		check("parse", nil, err)
	} else {
		got, err := seqdiff.Apply(parsed, c.old)
		check("apply parsed", got, err)
	}

	// patch(1) reads empty ranges differently, they only show up here if one side is empty.
	if validate && len(c.old) > 0 && len(c.new) > 0 {
		got, err := unixpatch.Patch(ctx, c.old, out)
		check("unix patch", got, err)
	}

	d := 0
	for _, delta := range p.Deltas() {
		d += delta.Original.Size() + delta.Revised.Size()
	}
	return result{
		commitID: c.commitID,
		file:     c.filename,
		variant:  variant,
		N:        len(c.old),
		M:        len(c.new),
		D:        d,
		duration: duration,
	}, msgs
}

// sample picks n random commits. It returns all commits if n <= 0.
func sample(commitIDs []string, n int) []string {
	if n <= 0 || n >= len(commitIDs) {
		return commitIDs
	}
	picked := make(map[int]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		i := rand.IntN(len(commitIDs))
		if _, ok := picked[i]; ok {
			continue
		}
		out = append(out, commitIDs[i])
		picked[i] = struct{}{}
	}
	return out
}

// lines splits s into lines without line endings. A missing newline at the end is ignored.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
