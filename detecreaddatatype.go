package grs

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types.  Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
//
// Streams shorter than the longest signature (including empty ones) are
// reported as uncompressed.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser sniffs the first bytes of rs, rewinds it, and
// wraps it in the matching decompressor. Zip archives yield the first file in
// the archive, which is how 23andMe and similar services ship raw data.
// Closing the returned value closes rs.
func MaybeDecompressReadCloser(rs ReadSeekCloser) (io.ReadCloser, error) {
	dt, err := DetectDataType(rs)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Reset the original reader before handing it to a decompressor
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(rs)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rs}}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(rs)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{rs}}, nil
	case DataTypeBZip2:
		return &stackedCloser{Reader: bzip2.NewReader(rs), closers: []io.Closer{rs}}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(rs, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedCloser{Reader: reader, closers: []io.Closer{rs}}, nil
	case DataTypeZ:
		zl, err := zlib.NewReader(rs)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedCloser{Reader: zl, closers: []io.Closer{zl, rs}}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return rs, nil
}

// stackedCloser closes the decompressor (if it needs closing) and then the
// underlying source.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
