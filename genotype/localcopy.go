package genotype

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
)

// LocalCopy returns a local path holding the contents of path. Local paths are
// returned as they are. Google Storage objects are copied into the temp
// directory, because SQLite (for .bgi files) and the BGEN reader open
// filenames rather than readers. The returned cleanup removes any copy and is
// always safe to call.
func LocalCopy(path string, client *storage.Client) (string, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(path, "gs://") {
		return path, noop, nil
	}

	src, _, err := grs.MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return "", noop, err
	}
	defer src.Close()

	// Random prefix so that concurrent runs do not share a copy
	dst, err := os.CreateTemp("", "*_"+filepath.Base(path))
	if err != nil {
		return "", noop, pfx.Err(err)
	}
	cleanup := func() { os.Remove(dst.Name()) }

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		cleanup()
		return "", noop, pfx.Err(err)
	}

	if err := dst.Close(); err != nil {
		cleanup()
		return "", noop, pfx.Err(err)
	}

	return dst.Name(), cleanup, nil
}
