package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeInputs(t *testing.T, x, y string) config {
	t.Helper()
	dir := t.TempDir()
	cfg := config{lib: "seqdiff", x: filepath.Join(dir, "x"), y: filepath.Join(dir, "y"), context: -1}
	if err := os.WriteFile(cfg.x, []byte(x), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.y, []byte(y), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRunContext(t *testing.T) {
	tests := []struct {
		context int
		want    string
	}{
		{-1, "--- x\n+++ y\n@@ -1,5 +1,5 @@\n a\n b\n-c\n+C\n d\n e\n"},
		{1, "--- x\n+++ y\n@@ -2,3 +2,3 @@\n b\n-c\n+C\n d\n"},
		{0, "--- x\n+++ y\n@@ -3,1 +3,1 @@\n-c\n+C\n"},
	}
	for _, tt := range tests {
		cfg := writeInputs(t, "a\nb\nc\nd\ne\n", "a\nb\nC\nd\ne\n")
		cfg.context = tt.context
		cfg.check = true
		var buf strings.Builder
		if err := run(&buf, cfg); err != nil {
			t.Fatalf("run(...) with context %d failed: %v", tt.context, err)
		}
		if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
			t.Errorf("run(...) with context %d is different [-want,+got]:\n%s", tt.context, diff)
		}
	}
}

func TestRunOtherLibrary(t *testing.T) {
	cfg := writeInputs(t, "a\n", "b\n")
	cfg.lib = "udiff"
	var buf strings.Builder
	if err := run(&buf, cfg); err != nil {
		t.Fatalf("run(...) failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("run(...) produced no output")
	}

	cfg.context = 1
	if err := run(&buf, cfg); err == nil {
		t.Errorf("run(...) with -context for %s succeeded, want error", cfg.lib)
	}
}

func TestRunUnknownLibrary(t *testing.T) {
	cfg := writeInputs(t, "a\n", "b\n")
	cfg.lib = "nope"
	if err := run(&strings.Builder{}, cfg); err == nil {
		t.Errorf("run(...) with unknown library succeeded, want error")
	}
}
