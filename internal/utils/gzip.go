package utils

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// readCloser ties a Reader to a Closer (composite).
type readCloser struct {
	io.Reader
	io.Closer
}

// MaybeGunzip returns a reader that yields the decompressed stream if 'src' is gzip,
// else returns src as-is. It preserves the ability to Close().
func MaybeGunzip(src io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(src)
	// Peek 2 bytes for gzip magic
	hdr, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(hdr) >= 2 && hdr[0] == 0x1f && hdr[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: gr, Closer: src}, nil
	}
	return readCloser{Reader: br, Closer: src}, nil
}

// GunzipBytes decompresses src when it carries the gzip magic, else returns it unchanged.
func GunzipBytes(src []byte) ([]byte, error) {
	rc, err := MaybeGunzip(io.NopCloser(bytes.NewReader(src)))
	if err != nil {
		return nil, err
	}
	defer Try(rc.Close)
	return io.ReadAll(rc)
}

func GzipBytes(src []byte) ([]byte, error) {
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)

	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
