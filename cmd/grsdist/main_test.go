package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()

	dist := filepath.Join(dir, "dist.csv")
	if err := os.WriteFile(dist, []byte("0.20,1139.6,0\n0.21,1214.8,1214.8\n0.22,1214.8,1139.6\n0.23,0,1214.8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	plot := filepath.Join(dir, "t1d-grs.png")
	if err := run(dist, plot, 0.215, 0.231); err != nil {
		t.Fatal(err)
	}

	png, err := os.ReadFile(plot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Expected a PNG")
	}
}
