package grs

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// The detector may return several candidates (a decimal point is as regular
// as a comma in a table of weights), so candidates are ranked by this list.
var preferredDelimiters = []rune{',', '\t', ';', '|', ' '}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Comma is the fallback.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	seen := make(map[rune]struct{}, len(delimiters))
	for _, v := range delimiters {
		if len(v) > 0 {
			seen[rune(v[0])] = struct{}{}
		}
	}

	for _, pref := range preferredDelimiters {
		if _, exists := seen[pref]; exists {
			return pref
		}
	}

	return ','
}

// DetermineDelimiterBytes is DetermineDelimiter for data that is already in
// memory, which lets the caller parse the same bytes afterwards.
func DetermineDelimiterBytes(data []byte) rune {
	return DetermineDelimiter(bytes.NewReader(data))
}
