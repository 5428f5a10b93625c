// Package distribution estimates where a linear T1D genetic risk score falls
// among published T1D and T2D case distributions. The reference table was
// digitised from a figure, so each density is stored as a pixel row.
package distribution

import (
	"fmt"
	"io"
	"log"
	"sort"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

// Calibration of the digitised figure: the pixel row of zero density, and the
// number of pixels per density unit.
const (
	ZeroPixel      = 1290
	PixelsPerUnit  = 75.2
	DefaultCutoff  = 0.231
	defaultBinSize = 0.005
)

type row struct {
	Value    float64 `csv:"value"`
	T2DPixel float64 `csv:"t2d"`
	T1DPixel float64 `csv:"t1d"`
}

// PixelToDensity converts a digitised pixel row into a density. A pixel of
// zero marks an empty bin.
func PixelToDensity(y float64) float64 {
	if y == 0 {
		return 0
	}
	return (ZeroPixel - y) / PixelsPerUnit
}

type Distribution struct {
	Values []float64 // Bin start, ascending

	T1D []float64 // Density per bin
	T2D []float64

	T1DCumulative []float64 // Cumulative percentage per bin
	T2DCumulative []float64
}

// Parse reads a headerless value,t2dPixel,t1dPixel table.
func Parse(r io.Reader) (*Distribution, error) {
	rows := []*row{}
	if err := gocsv.UnmarshalWithoutHeaders(r, &rows); err != nil {
		return nil, pfx.Err(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("distribution table has no rows")
	}

	d := &Distribution{}
	for i, r := range rows {
		if i > 0 && r.Value <= d.Values[i-1] {
			return nil, fmt.Errorf("distribution table values must increase; row %d has %v after %v", i+1, r.Value, d.Values[i-1])
		}
		d.Values = append(d.Values, r.Value)
		d.T2D = append(d.T2D, PixelToDensity(r.T2DPixel))
		d.T1D = append(d.T1D, PixelToDensity(r.T1DPixel))
	}

	var err error
	if d.T1DCumulative, err = CumulativePercent(d.T1D); err != nil {
		return nil, pfx.Err(fmt.Errorf("T1D: %w", err))
	}
	if d.T2DCumulative, err = CumulativePercent(d.T2D); err != nil {
		return nil, pfx.Err(fmt.Errorf("T2D: %w", err))
	}

	return d, nil
}

// Load reads a distribution table from a local or gs:// path.
func Load(path string, client *storage.Client) (*Distribution, error) {
	f, err := grs.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d distribution bins from %s\n", len(d.Values), path)

	return d, nil
}

// CumulativePercent turns densities into running totals, as a percentage of
// the overall total.
func CumulativePercent(densities []float64) ([]float64, error) {
	total, err := stats.Sum(densities)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("densities sum to zero")
	}

	cum, err := stats.CumulativeSum(densities)
	if err != nil {
		return nil, err
	}

	for i := range cum {
		cum[i] = cum[i] * 100 / total
	}

	return cum, nil
}

// EstimatePercentile interpolates linearly between the two bins that bracket
// value. Values below the first bin are the 0th percentile and values at or
// above the last bin are the 100th.
func EstimatePercentile(value float64, values, cumulative []float64) float64 {
	// First index whose value is strictly greater
	i := sort.Search(len(values), func(j int) bool { return values[j] > value })

	if i == 0 {
		return 0
	}
	if i == len(values) {
		return 100
	}

	ratio := (value - values[i-1]) / (values[i] - values[i-1])

	return cumulative[i-1] + ratio*(cumulative[i]-cumulative[i-1])
}

func (d *Distribution) T1DPercentile(value float64) float64 {
	return EstimatePercentile(value, d.Values, d.T1DCumulative)
}

func (d *Distribution) T2DPercentile(value float64) float64 {
	return EstimatePercentile(value, d.Values, d.T2DCumulative)
}

// Fprint writes the T1D and T2D percentiles of value.
func (d *Distribution) Fprint(w io.Writer, value float64) {
	fmt.Fprintf(w, "T1D percentile for %.3f estimated %.0f\n", value, d.T1DPercentile(value))
	fmt.Fprintf(w, "T2D percentile for %.3f estimated %.0f\n", value, d.T2DPercentile(value))
}
