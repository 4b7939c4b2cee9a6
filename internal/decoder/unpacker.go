// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decoder

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic   = []byte{0x04, 0x22, 0x4d, 0x18}
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	return r.close()
}

func nopClose() error { return nil }

// Unpack returns a reader of the uncompressed contents of r.  The
// compression format is recognised by its magic bytes; anything else is
// passed through unchanged.  Closing the result does not close r.
func Unpack(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("unpacker peek error: %w", err)
	}

	var factory func(io.Reader) (io.ReadCloser, error)

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case bytes.HasPrefix(magic, bzip2Magic):
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return readCloser{bzip2.NewReader(r), nopClose}, nil
		}
	case bytes.HasPrefix(magic, xzMagic):
		factory = func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}

			return readCloser{xr, nopClose}, nil
		}
	case bytes.HasPrefix(magic, zstdMagic):
		factory = func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return readCloser{zr, func() error { zr.Close(); return nil }}, nil
		}
	case bytes.HasPrefix(magic, lz4Magic):
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return readCloser{lz4.NewReader(r), nopClose}, nil
		}
	default:
		return readCloser{br, nopClose}, nil
	}

	rdr, err := factory(br)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	return rdr, nil
}
