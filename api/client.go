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

// Package api fetches objects from the OpenStreetMap editing API (version
// 0.6) and parses the responses into the model package's objects.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"m4o.io/osmxml"
	"m4o.io/osmxml/database"
	"m4o.io/osmxml/internal/monitoring"
	"m4o.io/osmxml/internal/tracing"
	"m4o.io/osmxml/model"
)

// maxMessage bounds the part of an error body kept in Error.Message.
const maxMessage = 512

// Client issues GET requests against the API.  It is safe for concurrent
// use.  Failed requests are never retried.
type Client struct {
	cfg     options
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	cache   *lru.Cache[string, []byte]
	group   singleflight.Group
}

// NewClient returns a new client configured with options.
func NewClient(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &model.ArgumentError{Name: "base url", Value: cfg.baseURL, Reason: "must be an absolute url"}
	}

	if cfg.concurrency < 1 {
		return nil, &model.ArgumentError{Name: "concurrency", Value: fmt.Sprint(cfg.concurrency), Reason: "must be positive"}
	}

	if cfg.batchSize < 1 {
		return nil, &model.ArgumentError{Name: "batch size", Value: fmt.Sprint(cfg.batchSize), Reason: "must be positive"}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Client{
		cfg:     cfg,
		base:    base,
		client:  cfg.httpClient,
		limiter: rate.NewLimiter(cfg.limit, cfg.burst),
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}

	if cfg.cacheSize > 0 {
		if c.cache, err = lru.New[string, []byte](cfg.cacheSize); err != nil {
			return nil, fmt.Errorf("cannot create response cache: %w", err)
		}
	}

	return c, nil
}

// BaseURL returns the API endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// get returns the body of a successful GET of path below the base url.
// Concurrent identical requests share one round trip.  The shared request
// runs detached from any single caller's cancellation; each caller stops
// waiting when its own ctx is done.
func (c *Client) get(ctx context.Context, query url.Values, path ...string) ([]byte, error) {
	u := c.base.JoinPath(path...)
	u.RawQuery = query.Encode()
	key := u.String()

	if c.cache != nil {
		body, ok := c.cache.Get(key)
		monitoring.RecordCacheLookup(ok)

		if ok {
			return body, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("osm api: GET %s: %w", u.Path, err)
	}

	ch := c.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout())
		defer cancel()

		body, err := c.fetch(shared, u, path[0])
		if err == nil && c.cache != nil {
			c.cache.Add(key, body)
		}

		return body, err
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("osm api: GET %s: %w", u.Path, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.([]byte), nil
	}
}

func (c *Client) timeout() time.Duration {
	if c.client.Timeout > 0 {
		return c.client.Timeout
	}

	return defaultTimeout
}

func (c *Client) fetch(ctx context.Context, u *url.URL, endpoint string) (body []byte, err error) {
	ctx, span := tracing.StartSpan(ctx, "osm.api.get")
	defer func() { tracing.EndSpan(span, err) }()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %w", err)
	}

	req.Header.Set("User-Agent", c.cfg.userAgent)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		monitoring.RecordAPIRequest(endpoint, 0, time.Since(start))
		c.cfg.logger.Error("osm api request failed", "url", u, "error", err)

		return nil, fmt.Errorf("osm api: GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	monitoring.RecordAPIRequest(endpoint, resp.StatusCode, time.Since(start))
	span.SetAttributes(tracing.HTTPAttributes(http.MethodGet, u.Path, resp.StatusCode)...)

	body, err = readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("osm api: GET %s: cannot read body: %w", u.Path, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		msg = truncate(msg, maxMessage)

		c.cfg.logger.Debug("osm api error", "url", u, "status", resp.StatusCode, "message", msg)

		return nil, &Error{StatusCode: resp.StatusCode, Path: u.Path, Message: msg}
	}

	c.cfg.logger.Debug("osm api response", "url", u, "bytes", len(body), "elapsed", time.Since(start))

	return body, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter.Limit() == rate.Inf {
		return nil
	}

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	monitoring.RecordRateLimitWait(time.Since(start))

	return nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}

func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gr.Close()

		r = gr
	}

	return io.ReadAll(r)
}

func (c *Client) parserOptions(extra ...osmxml.ParserOption) []osmxml.ParserOption {
	return append([]osmxml.ParserOption{
		osmxml.WithBackend(c.cfg.backend),
		osmxml.WithLogger(c.cfg.logger),
	}, extra...)
}

// objects fetches path and returns every object of the response in
// document order.
func (c *Client) objects(ctx context.Context, query url.Values, path ...string) ([]model.Entity, error) {
	body, err := c.get(ctx, query, path...)
	if err != nil {
		return nil, err
	}

	objs, err := osmxml.ParseObjects(bytes.NewReader(body), c.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("osm api: GET %s: %w", strings.Join(path, "/"), err)
	}

	return objs, nil
}

// database fetches path into a new database.
func (c *Client) database(ctx context.Context, query url.Values, path ...string) (*database.Database, error) {
	body, err := c.get(ctx, query, path...)
	if err != nil {
		return nil, err
	}

	db, err := osmxml.ParseDatabase(bytes.NewReader(body), c.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("osm api: GET %s: %w", strings.Join(path, "/"), err)
	}

	return db, nil
}
