package genotype

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bgen"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// LoadImputedBGEN reads imputed genotype probabilities for the given rsIDs
// from one sample of a BGEN file, using its BGEN index (.bgi) to find each
// variant. Every record keeps its most probable genotype, exactly as with
// .gen files. rsIDs that are not in the index are skipped. Like the .gen
// source, the BGEN source is optional: if the file does not exist, an empty
// map and no error are returned. Both files may be on Google Storage, in
// which case they are first copied to the temp directory.
func LoadImputedBGEN(bgenPath, bgiPath string, sample int, rsIDs []string, client *storage.Client) (map[string]Variant, error) {
	out := make(map[string]Variant)

	if bgenPath == "" {
		return out, nil
	}
	if bgiPath == "" {
		bgiPath = bgenPath + ".bgi"
	}

	localBGEN, cleanup, err := LocalCopy(bgenPath, client)
	defer cleanup()
	if errors.Is(err, grs.ErrMissingRequiredFile) {
		log.Printf("No imputed BGEN at %s; continuing without it\n", bgenPath)
		return out, nil
	} else if err != nil {
		return nil, err
	}
	if _, err := os.Stat(localBGEN); errors.Is(err, os.ErrNotExist) {
		log.Printf("No imputed BGEN at %s; continuing without it\n", bgenPath)
		return out, nil
	}

	localBGI, cleanupBGI, err := LocalCopy(bgiPath, client)
	defer cleanupBGI()
	if err != nil {
		return nil, fmt.Errorf("BGEN %s needs an index: %w", bgenPath, err)
	}
	if _, err := os.Stat(localBGI); err != nil {
		return nil, pfx.Err(fmt.Errorf("BGEN %s needs an index: %w", bgenPath, err))
	}

	bg, err := bgen.Open(localBGEN)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer bg.Close()

	// Read-only so that a bad path can never create an empty index
	bgi, err := bgen.OpenBGI(localBGI + "?mode=ro")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer bgi.Close()

	rdr := bg.NewVariantReader()

	for _, rsID := range rsIDs {
		idx, err := FindOneVariant(bgi.DB, rsID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if idx.NAlleles != 2 {
			log.Printf("%s is not biallelic in %s (%d alleles), skipping\n", rsID, bgenPath, idx.NAlleles)
			continue
		}

		variant := rdr.ReadAt(int64(idx.FileStartPosition))
		if err := rdr.Error(); err != nil {
			return nil, pfx.Err(err)
		}
		if variant == nil {
			continue
		}

		v, err := variantFromBGEN(variant, sample)
		if err != nil {
			log.Println(err)
			continue
		}
		v.ID = rsID

		out[rsID] = v
	}

	log.Printf("Loaded %d of %d requested imputed variants from %s\n", len(out), len(rsIDs), bgenPath)

	return out, nil
}

// FindOneVariant looks up the first index entry with the given rsID.
func FindOneVariant(db *sqlx.DB, rsID string) (bgen.VariantIndex, error) {
	row := bgen.VariantIndex{}
	if err := db.Get(&row, "SELECT * FROM Variant WHERE rsid=? LIMIT 1", rsID); err != nil {
		return row, err
	}

	return row, nil
}

func variantFromBGEN(variant *bgen.Variant, sample int) (Variant, error) {
	if sample < 0 || sample >= len(variant.SampleProbabilities) {
		return Variant{}, fmt.Errorf("%s: sample %d is out of range (%d samples)", variant.RSID, sample, len(variant.SampleProbabilities))
	}
	if len(variant.Alleles) != 2 {
		return Variant{}, fmt.Errorf("%s: expected 2 alleles, found %d", variant.RSID, len(variant.Alleles))
	}

	sp := variant.SampleProbabilities[sample]
	if sp.Missing || sp.Ploidy != 2 || len(sp.Probabilities) != 3 {
		return Variant{}, fmt.Errorf("%s: sample %d has no diploid genotype probabilities", variant.RSID, sample)
	}

	var probs [3]float64
	copy(probs[:], sp.Probabilities)
	which, prob := PickGenotype(probs)

	return Variant{
		ID:         variant.RSID,
		Chromosome: strings.TrimPrefix(variant.Chromosome, "0"),
		Position:   variant.Position,
		Genotype:   genotypeFromAlleles(string(variant.Alleles[0]), string(variant.Alleles[1]), which),
		Confidence: prob,
		Source:     SourceBGEN,
	}, nil
}
