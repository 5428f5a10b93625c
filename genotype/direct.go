package genotype

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
)

// Map columns in a 23andMe-style raw data file to their positions
const (
	DirectID int = iota
	DirectChromosome
	DirectPosition
	DirectGenotype
)

// DirectReader reads raw genotype calls (rsid, chromosome, position,
// genotype) one line at a time. Comment lines starting with # and blank lines
// are skipped.
type DirectReader struct {
	source  string
	scanner *bufio.Scanner
	line    int
	err     error
}

func NewDirectReader(r io.Reader, source string) *DirectReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &DirectReader{
		source:  source,
		scanner: scanner,
	}
}

func (d *DirectReader) Err() error {
	if d.err != nil {
		return d.err
	}

	return d.scanner.Err()
}

// Read returns the next call, or nil at the end of the data or on error. Check
// Err after Read returns nil.
func (d *DirectReader) Read() *Variant {
	for d.err == nil && d.scanner.Scan() {
		d.line++

		data := d.scanner.Text()
		if strings.HasPrefix(data, "#") {
			continue
		}

		cols := strings.Fields(data)
		if len(cols) == 0 {
			continue
		}

		if len(cols) < DirectGenotype+1 {
			d.err = &grs.ParseError{Source: d.source, Line: d.line, Fields: len(cols), Want: DirectGenotype + 1}
			return nil
		}

		row := &Variant{
			ID:         cols[DirectID],
			Chromosome: cols[DirectChromosome],
			Genotype:   cols[DirectGenotype],
			Confidence: 1.0,
			Source:     SourceDirect,
		}

		// Positions are informational only
		if coord64, err := strconv.ParseUint(cols[DirectPosition], 10, 32); err == nil {
			row.Position = uint32(coord64)
		}

		return row
	}

	return nil
}

// LoadDirect reads every call from r into a map keyed by ID. Later lines
// overwrite earlier lines with the same ID.
func LoadDirect(r io.Reader, source string) (map[string]Variant, error) {
	out := make(map[string]Variant)

	rdr := NewDirectReader(r, source)
	for v := rdr.Read(); v != nil; v = rdr.Read() {
		out[v.ID] = *v
	}
	if err := rdr.Err(); err != nil {
		var pe *grs.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, pfx.Err(err)
	}

	return out, nil
}

// LoadDirectFile loads directly genotyped calls from a local or gs:// path,
// which may be compressed. The file is required: its absence is reported as
// grs.ErrMissingRequiredFile.
func LoadDirectFile(path string, client *storage.Client) (map[string]Variant, error) {
	f, err := grs.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := LoadDirect(f, path)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d directly genotyped variants from %s\n", len(out), path)

	return out, nil
}
