package distribution

import (
	"bytes"
	"io"

	"github.com/carbocation/pfx"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plot renders both densities as PNG, with dashed lines at the cutoff and at
// the individual's score.
func (d *Distribution) Plot(w io.Writer, individual, cutoff float64) error {
	xs, t2d := steps(d.Values, d.T2D)
	_, t1d := steps(d.Values, d.T1D)

	yMax := 0.0
	for _, y := range append(append([]float64{}, t1d...), t2d...) {
		if y > yMax {
			yMax = y
		}
	}

	graph := chart.Chart{
		Width:  800,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Type 1 diabetes genetic risk score",
		},
		YAxis: chart.YAxis{
			Name:  "Population density",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Type 2 diabetes",
				Style: chart.Style{
					StrokeColor: drawing.ColorBlack,
					FillColor:   drawing.ColorFromHex("9DD0D9"),
				},
				XValues: xs,
				YValues: t2d,
			},
			chart.ContinuousSeries{
				Name: "Type 1 diabetes",
				Style: chart.Style{
					StrokeColor: drawing.ColorBlack,
					FillColor:   drawing.ColorFromHex("F0B298").WithAlpha(178),
				},
				XValues: xs,
				YValues: t1d,
			},
			verticalLine("Cutoff", cutoff, yMax, drawing.ColorRed),
			verticalLine("Individual", individual, yMax, drawing.ColorBlue),
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	if _, err := buffer.WriteTo(w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// steps converts bins into the outline of a histogram. The last bin is given
// the default bin width.
func steps(values, densities []float64) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(values)+2)
	ys := make([]float64, 0, 2*len(values)+2)

	for i, v := range values {
		end := v + defaultBinSize
		if i+1 < len(values) {
			end = values[i+1]
		}
		xs = append(xs, v, end)
		ys = append(ys, densities[i], densities[i])
	}

	return xs, ys
}

func verticalLine(name string, x, height float64, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     2,
			StrokeDashArray: []float64{5, 5},
		},
		XValues: []float64{x, x},
		YValues: []float64{0, height},
	}
}
