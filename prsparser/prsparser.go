package prsparser

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/grs"
)

type PRSParser struct {
	CSVReaderSettings *csv.Reader
	Layout            Layout
}

func New(layout string) (*PRSParser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l)
}

func NewWithLayout(layout Layout) (*PRSParser, error) {
	if layout.ColID < 0 || layout.ColWeight < 0 || layout.ColEffectAllele < 0 {
		return nil, fmt.Errorf("Layout must define ID, weight and effect allele columns")
	}

	n := &PRSParser{}
	n.Layout = layout
	n.CSVReaderSettings = &csv.Reader{}
	n.CSVReaderSettings.Comma = layout.Delimiter
	n.CSVReaderSettings.Comment = layout.Comment

	return n, nil
}

// ParseRow converts one panel row into an Entry. The returned error is a
// *grs.ParseError, without Source or Line, when the row is too short or a
// number cannot be parsed, or when an odds ratio is not a positive finite
// number.
func (prsp *PRSParser) ParseRow(row []string) (Entry, error) {
	l := prsp.Layout
	p := Entry{}

	if len(row) < l.MinColumns() {
		return p, &grs.ParseError{Fields: len(row), Want: l.MinColumns()}
	}

	p.ID = strings.TrimSpace(row[l.ColID])
	p.EffectAllele = strings.TrimSpace(row[l.ColEffectAllele])
	if l.ColNonEffectAllele >= 0 {
		p.NonEffectAllele = strings.TrimSpace(row[l.ColNonEffectAllele])
	}

	if weight, err := strconv.ParseFloat(strings.TrimSpace(row[l.ColWeight]), 64); err != nil {
		return p, &grs.ParseError{Fields: len(row), Want: l.MinColumns(), Err: err}
	} else {
		p.Weight = weight
	}

	if l.ColOddsRatio >= 0 {
		if or, err := strconv.ParseFloat(strings.TrimSpace(row[l.ColOddsRatio]), 64); err != nil {
			return p, &grs.ParseError{Fields: len(row), Want: l.MinColumns(), Err: err}
		} else if !(or > 0) || math.IsInf(or, 1) {
			return p, &grs.ParseError{Fields: len(row), Want: l.MinColumns(), Err: fmt.Errorf("%s: odds ratio must be positive and finite, got %v", p.ID, or)}
		} else {
			p.OddsRatio = or
		}
	}

	return p, nil
}
