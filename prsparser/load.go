package prsparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
)

// Parse reads a whole panel. When header is true the first row is skipped.
// IDs listed in exclude are removed after parsing; excluded IDs that are not
// in the panel are logged and otherwise ignored. Later rows overwrite earlier
// rows with the same ID.
func Parse(r io.Reader, name string, layout Layout, header bool, exclude []string) (*Panel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if layout.Delimiter == 0 {
		layout.Delimiter = grs.DetermineDelimiterBytes(data)
	}

	parser, err := NewWithLayout(layout)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = parser.CSVReaderSettings.Comma
	cr.Comment = parser.CSVReaderSettings.Comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	panel := &Panel{
		Name:    name,
		Layout:  layout,
		Entries: make(map[string]Entry),
	}

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, &grs.ParseError{Source: name, Line: line, Err: err}
		}

		if i == 0 && header {
			continue
		}

		entry, err := parser.ParseRow(row)
		if err != nil {
			var pe *grs.ParseError
			if errors.As(err, &pe) {
				pe.Source = name
				pe.Line, _ = cr.FieldPos(0)
			}
			return nil, err
		}

		panel.Entries[entry.ID] = entry
	}

	for _, id := range exclude {
		if _, exists := panel.Entries[id]; !exists {
			log.Printf("%s: excluded SNP %s is not in the panel\n", name, id)
			continue
		}
		delete(panel.Entries, id)
	}

	return panel, nil
}

// Load reads a panel from a local or gs:// path, which may be compressed. The
// panel is named after its path. A missing panel is reported as
// grs.ErrMissingRequiredFile.
func Load(path string, layout Layout, header bool, exclude []string, client *storage.Client) (*Panel, error) {
	f, err := grs.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	panel, err := Parse(f, path, layout, header, exclude)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d SNPs from panel %s\n", panel.Len(), path)

	return panel, nil
}
