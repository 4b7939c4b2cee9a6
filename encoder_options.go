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
	"log/slog"

	"m4o.io/osmxml/internal/encoder"
)

// Compression selects how an encoded document is compressed.
type Compression = encoder.Compression

const (
	CompressionNone = encoder.RAW
	CompressionGzip = encoder.GZIP
	CompressionZstd = encoder.ZSTD
	CompressionLz4  = encoder.LZ4
	CompressionXz   = encoder.XZ
)

// DefaultCompression writes plain XML.
const DefaultCompression = CompressionNone

// ParseCompression converts a compression name (none, gzip, zstd, lz4 or xz)
// to a Compression.
func ParseCompression(s string) (Compression, error) {
	return encoder.ParseCompression(s)
}

// encoderOptions provides optional configuration parameters for Encoder construction.
type encoderOptions struct {
	compression Compression
	version     string
	generator   string
	bounds      bool
	logger      *slog.Logger
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithCompression specifies the compression applied to the whole document.
// The default is CompressionNone.
func WithCompression(c Compression) EncoderOption {
	return func(o *encoderOptions) {
		o.compression = c
	}
}

// WithVersion sets the version attribute of the osm root element.
func WithVersion(version string) EncoderOption {
	return func(o *encoderOptions) {
		o.version = version
	}
}

// WithGenerator sets the generator attribute of the osm root element.
func WithGenerator(generator string) EncoderOption {
	return func(o *encoderOptions) {
		o.generator = generator
	}
}

// WithBounds writes a bounds element enclosing every encoded node that has
// coordinates.
func WithBounds() EncoderOption {
	return func(o *encoderOptions) {
		o.bounds = true
	}
}

// WithEncoderLogger sets the logger.  The default is slog.Default().
func WithEncoderLogger(l *slog.Logger) EncoderOption {
	return func(o *encoderOptions) {
		o.logger = l
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	compression: DefaultCompression,
	version:     encoder.DefaultVersion,
	generator:   encoder.DefaultGenerator,
}
