// grsdist reports where a linear T1D genetic risk score falls among the T1D
// and T2D reference distributions, and optionally plots it.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/grs/distribution"
	"github.com/carbocation/pfx"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		distPath, plotPath string
		individual, cutoff float64
	)

	flag.StringVar(&distPath, "dist", "data/dist.csv", "Distribution table with value,t2dPixel,t1dPixel rows")
	flag.Float64Var(&individual, "score", -1, "Genetic risk score to place on the distributions")
	flag.Float64Var(&cutoff, "cutoff", distribution.DefaultCutoff, "Cutoff above which a score is consistent with T1D")
	flag.StringVar(&plotPath, "plot", "", "(Optional) Path for a PNG plot of both distributions")
	flag.Parse()

	if individual < 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(distPath, plotPath, individual, cutoff); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}

func run(distPath, plotPath string, individual, cutoff float64) error {
	var client *storage.Client
	if grs.NeedsStorageClient(distPath) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			return err
		}
		defer client.Close()
	}

	path, err := grs.ExpandHome(distPath)
	if err != nil {
		return err
	}

	dist, err := distribution.Load(path, client)
	if err != nil {
		return err
	}

	dist.Fprint(STDOUT, cutoff)
	dist.Fprint(STDOUT, individual)

	if plotPath == "" {
		return nil
	}

	if plotPath, err = grs.ExpandHome(plotPath); err != nil {
		return err
	}

	f, err := os.Create(plotPath)
	if err != nil {
		return pfx.Err(err)
	}

	if err := dist.Plot(f, individual, cutoff); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	log.Printf("Wrote %s\n", plotPath)
	fmt.Fprintf(STDOUT, "Plot: %s\n", plotPath)

	return nil
}
