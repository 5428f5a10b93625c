// Package grs holds what the genetic risk score tools share: opening local or
// Google Storage files with transparent decompression, delimiter detection,
// and the error kinds reported by the loaders.
package grs

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredFile is returned (wrapped with the offending path) when a
// genotype or panel file cannot be found. Optional sources, such as imputed
// genotypes, never surface this error to callers.
var ErrMissingRequiredFile = errors.New("required file is missing")

// ParseError describes a row that could not be parsed according to its
// schema.
type ParseError struct {
	Source string
	Line   int // 1-based
	Fields int // Number of fields observed
	Want   int // Minimum number of fields the schema requires
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Err.Error())
	}

	return fmt.Sprintf("%s:%d: expected at least %d fields, found %d", e.Source, e.Line, e.Want, e.Fields)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IncompleteDataError is the completeness gate: a panel may not produce a
// score unless every one of its SNPs was found in the variant data.
type IncompleteDataError struct {
	Panel   string
	Missing int
	IDs     []string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("%s: there were %d missing SNPs. Please run imputation to fill them in before scoring", e.Panel, e.Missing)
}
