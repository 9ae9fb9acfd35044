package qpcr

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type Compression byte

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZ
	CompressionBzip2
)

// Magic numbers from https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZ:     {0x1f, 0x9d},
	CompressionBzip2: {0x42, 0x5a, 0x68},
}

// DetectCompression reads the first few bytes from r and matches them against
// the known compression signatures. Instruments and LIMS exports routinely
// hand us gzipped or zipped tables, so callers generally should not assume
// plain text.
func DetectCompression(r io.Reader) (Compression, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return CompressionUnknown, err
	}

Outer:
	for kind, sig := range compressionSigs {
		for i := range sig {
			if buff[i] != sig[i] {
				continue Outer
			}
		}
		return kind, nil
	}

	return CompressionNone, nil
}

// MaybeDecompressReadCloser sniffs rs and, if it holds a compressed stream,
// wraps it in the matching decompressor. rs is rewound before the chosen
// reader is handed back, so the caller always reads from the start.
func MaybeDecompressReadCloser(rs io.ReadSeeker) (io.ReadCloser, error) {
	kind, err := DetectCompression(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch kind {
	case CompressionGzip:
		return gzip.NewReader(rs)
	case CompressionZip:
		// A zip archive: assume the table is the first (usually only) entry.
		zr := zipstream.NewReader(rs)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &nopReadCloser{zr}, nil
	case CompressionBzip2:
		return &nopReadCloser{bzip2.NewReader(rs)}, nil
	case CompressionXZ:
		xzr, err := xz.NewReader(rs, 0)
		if err != nil {
			return nil, err
		}
		return &nopReadCloser{xzr}, nil
	case CompressionZ:
		return zlib.NewReader(rs)
	}

	return &nopReadCloser{rs}, nil
}

// nopReadCloser adds a no-op Close to readers that don't have one.
type nopReadCloser struct {
	io.Reader
}

func (n *nopReadCloser) Close() error {
	return nil
}
