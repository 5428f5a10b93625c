package compileinfo

import (
	"bytes"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	c := CompileInfo{Package: "t1dgrs", GoVersion: "go1.18", Commit: "abc123", CommitTime: "2022-06-01T00:00:00Z", Modified: true}

	want := "t1dgrs built with go1.18 from commit abc123 at 2022-06-01T00:00:00Z (with uncommitted changes)"
	if got := c.String(); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	c := Get()
	if c.GoVersion == "" || c.Commit == "" || c.CommitTime == "" || c.Package == "" {
		t.Errorf("Expected every field to be set, got %+v", c)
	}

	var buf bytes.Buffer
	Fprint(&buf)
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("Expected a trailing newline in %q", buf.String())
	}
}
