package distribution

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

const epsilon = 1e-6

// T1D densities 0, 1, 2, 1 and T2D densities 2, 1, 1, 0
const table = `0.20,1139.6,0
0.21,1214.8,1214.8
0.22,1214.8,1139.6
0.23,0,1214.8
`

func mustParse(t *testing.T) *Distribution {
	t.Helper()

	d, err := Parse(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}

	return d
}

func TestPixelToDensity(t *testing.T) {
	tests := map[float64]float64{
		0:      0,
		1290:   0,
		1214.8: 1,
		1139.6: 2,
	}

	for pixel, want := range tests {
		if got := PixelToDensity(pixel); math.Abs(got-want) > epsilon {
			t.Errorf("PixelToDensity(%v) = %v, want %v", pixel, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	d := mustParse(t)

	wantT1D := []float64{0, 25, 75, 100}
	wantT2D := []float64{50, 75, 100, 100}

	for i := range wantT1D {
		if math.Abs(d.T1DCumulative[i]-wantT1D[i]) > epsilon {
			t.Errorf("T1D bin %d: got %v, want %v", i, d.T1DCumulative[i], wantT1D[i])
		}
		if math.Abs(d.T2DCumulative[i]-wantT2D[i]) > epsilon {
			t.Errorf("T2D bin %d: got %v, want %v", i, d.T2DCumulative[i], wantT2D[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"0.2,0,0\n0.21,0,0\n",
		"0.2,1214.8,1214.8\n0.1,1214.8,1214.8\n",
		"0.2,abc,1214.8\n",
	}

	for _, data := range tests {
		if _, err := Parse(strings.NewReader(data)); err == nil {
			t.Errorf("%q: expected an error", data)
		}
	}
}

func TestEstimatePercentile(t *testing.T) {
	d := mustParse(t)

	tests := []struct {
		value    float64
		t1d, t2d float64
	}{
		{0.10, 0, 0},
		{0.20, 0, 50},
		{0.215, 50, 87.5},
		{0.21, 25, 75},
		{0.23, 100, 100},
		{0.50, 100, 100},
	}

	for _, tt := range tests {
		if got := d.T1DPercentile(tt.value); math.Abs(got-tt.t1d) > epsilon {
			t.Errorf("T1D percentile of %v: got %v, want %v", tt.value, got, tt.t1d)
		}
		if got := d.T2DPercentile(tt.value); math.Abs(got-tt.t2d) > epsilon {
			t.Errorf("T2D percentile of %v: got %v, want %v", tt.value, got, tt.t2d)
		}
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	mustParse(t).Fprint(&buf, 0.21)

	want := "T1D percentile for 0.210 estimated 25\nT2D percentile for 0.210 estimated 75\n"
	if buf.String() != want {
		t.Errorf("Got %q, want %q", buf.String(), want)
	}
}

func TestPlot(t *testing.T) {
	var buf bytes.Buffer
	if err := mustParse(t).Plot(&buf, 0.215, DefaultCutoff); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("Expected PNG output")
	}
}
