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

	"m4o.io/osmxml/database"
	"m4o.io/osmxml/model"
)

// parserOptions provides optional configuration parameters for Parser construction.
type parserOptions struct {
	backend   Backend
	db        *database.Database
	callbacks Callbacks
	logger    *slog.Logger
	allocator *model.IDAllocator
}

// ParserOption configures how we set up the parser.
type ParserOption func(*parserOptions)

// WithBackend selects the XML backend.  The default is BackendStream.
func WithBackend(b Backend) ParserOption {
	return func(o *parserOptions) {
		o.backend = b
	}
}

// WithDatabase stores every accepted object in db.
func WithDatabase(db *database.Database) ParserOption {
	return func(o *parserOptions) {
		o.db = db
	}
}

// WithCallbacks sets the sink notified of every object.  The default is
// DatabaseCallbacks.
func WithCallbacks(cb Callbacks) ParserOption {
	return func(o *parserOptions) {
		o.callbacks = cb
	}
}

// WithLogger sets the logger.  The default is slog.Default().
func WithLogger(l *slog.Logger) ParserOption {
	return func(o *parserOptions) {
		o.logger = l
	}
}

// WithIDAllocator sets the allocator for objects that carry no id attribute.
func WithIDAllocator(a *model.IDAllocator) ParserOption {
	return func(o *parserOptions) {
		o.allocator = a
	}
}

// defaultParserConfig provides a default configuration for parsers.
var defaultParserConfig = parserOptions{
	backend:   DefaultBackend,
	callbacks: DatabaseCallbacks{},
}
