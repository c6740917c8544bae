package iotable

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a plain or gzipped file for reading. Path "-" means stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	r, err := Decompress(fh)
	if err != nil {
		_ = fh.Close()
		return nil, ReadError(path, err)
	}
	closers := []io.Closer{fh}
	if c, ok := r.(io.Closer); ok {
		closers = append([]io.Closer{c}, closers...)
	}
	return &multiReadCloser{Reader: r, closers: closers}, nil
}

// Decompress detects gzip data by its magic number and returns a reader of
// the decompressed stream. Other data is returned as is.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}
