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

package osmxml

import (
	"fmt"
	"io"
	"os"

	"m4o.io/osmxml/internal/decoder"
	"m4o.io/osmxml/internal/encoder"
)

// Open opens an OSM XML file for reading.  Gzip, bzip2, xz, zstd and lz4
// compressed files are recognized by their magic bytes and decompressed
// transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc, err := decoder.Unpack(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cannot unpack %s: %w", path, err)
	}

	return &fileReader{ReadCloser: rc, f: f}, nil
}

type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r *fileReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}

	return err
}

// CompressionForPath returns the compression implied by the extension of
// path: .gz, .zst, .lz4 or .xz.  Anything else is CompressionNone.
func CompressionForPath(path string) Compression {
	return encoder.CompressionForPath(path)
}

// ParseFile reads the OSM XML file at path.
func ParseFile(path string, opts ...ParserOption) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	return NewParser(opts...).Parse(rc)
}
