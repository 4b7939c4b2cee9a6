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

package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Compression is an enumeration of the compression formats an OSM XML file
// may be written in.
type Compression int

const (
	RAW Compression = iota
	GZIP
	ZSTD
	LZ4
	XZ
)

var compressionNames = map[Compression]string{
	RAW:  "none",
	GZIP: "gzip",
	ZSTD: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

var compressionExtensions = map[string]Compression{
	".gz":  GZIP,
	".zst": ZSTD,
	".lz4": LZ4,
	".xz":  XZ,
}

func (c Compression) String() string {
	if s, ok := compressionNames[c]; ok {
		return s
	}

	return fmt.Sprintf("Compression(%d)", int(c))
}

// ParseCompression converts a compression name to a Compression.
func ParseCompression(s string) (Compression, error) {
	for c, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}

	return RAW, fmt.Errorf("%w: %q", ErrUnknownCompressionType, s)
}

// CompressionForPath picks the compression from the file extension.
// Unrecognized extensions are written uncompressed.
func CompressionForPath(path string) Compression {
	if c, ok := compressionExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return RAW
}
