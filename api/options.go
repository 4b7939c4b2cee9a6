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

package api

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"m4o.io/osmxml"
)

const (
	DefaultBaseURL     = "https://api.openstreetmap.org/api/0.6/"
	DefaultUserAgent   = "osmxml/1.0 (+https://m4o.io/osmxml)"
	DefaultConcurrency = 4
	DefaultBatchSize   = 100

	defaultTimeout = 30 * time.Second
)

// options provides optional configuration parameters for Client construction.
type options struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	limit       rate.Limit
	burst       int
	cacheSize   int
	concurrency int
	batchSize   int
	backend     osmxml.Backend
	logger      *slog.Logger
}

// Option configures how we set up the client.
type Option func(*options)

// WithBaseURL sets the versioned API endpoint, for example
// https://master.apis.dev.openstreetmap.org/api/0.6/.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithHTTPClient sets the client requests are sent with.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.  The OSM usage policy asks for
// one that identifies the application.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per second with the given burst.
// Requests are not limited by default.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.limit = rate.Limit(rps)
		o.burst = burst
	}
}

// WithCacheSize keeps the bodies of up to size successful responses.  The
// cache is disabled by default.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithConcurrency bounds the number of requests GetObjects has in flight.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithBatchSize sets how many ids GetObjects puts in one request.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithBackend selects the XML backend responses are parsed with.
func WithBackend(b osmxml.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger.  The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// defaultClientConfig provides a default configuration for clients.
var defaultClientConfig = options{
	baseURL:     DefaultBaseURL,
	userAgent:   DefaultUserAgent,
	limit:       rate.Inf,
	burst:       1,
	concurrency: DefaultConcurrency,
	batchSize:   DefaultBatchSize,
	backend:     osmxml.DefaultBackend,
}
