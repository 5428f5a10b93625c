package score

import (
	"fmt"
	"io"
)

func FprintLinear(w io.Writer, res LinearResult) {
	fmt.Fprintf(w, "Total SNPs: %d\n", res.Total)
	fmt.Fprintf(w, "Total SNPs used: %d\n", res.Used)
	fmt.Fprintf(w, "Genetic risk score: %.3f\n", res.GRS)
	fmt.Fprintln(w, res.Classification())
}

func FprintLogOdds(w io.Writer, name string, res LogOddsResult) {
	fmt.Fprintln(w, name)
	fmt.Fprintf(w, "Total SNPs: %d\n", res.Total)
	fmt.Fprintf(w, "Total SNPs used: %d\n", res.Used)
	fmt.Fprintf(w, "Genetic risk score: %.3f\n", res.Score)
	fmt.Fprintf(w, "Max possible genetic risk score: %.3f\n", res.MaxPossible)
	fmt.Fprintf(w, "Genetic risk score (percent): %.1f\n", res.Percent)
	fmt.Fprintf(w, "Total odds ratio: %.2f\n", res.OddsRatio)
	fmt.Fprintln(w)
}
