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
	"errors"
	"fmt"
	"io"

	"m4o.io/osmxml/internal/encoder/packers"
)

var ErrUnknownCompressionType = errors.New("unknown compression type")

// Packer compresses everything written to it into the underlying writer.  Be
// sure to call the Close method to flush the compressed stream.  Closing a
// Packer does not close the underlying writer.
type Packer interface {
	io.WriteCloser
}

// NewPacker creates the appropriate Packer for the compression.
func NewPacker(w io.Writer, c Compression) (Packer, error) {
	var (
		p   Packer
		err error
	)

	switch c {
	case RAW:
		p = packers.NewRawPacker(w)
	case GZIP:
		p = packers.NewGzipPacker(w)
	case ZSTD:
		p, err = packers.NewZstdPacker(w)
	case LZ4:
		p = packers.NewLz4Packer(w)
	case XZ:
		p, err = packers.NewXzPacker(w)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}

	if err != nil {
		return nil, fmt.Errorf("could not create %s packer: %w", c, err)
	}

	return p, nil
}
