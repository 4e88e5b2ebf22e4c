// Package fetch retrieves remote data files over HTTP.
//
// The pipeline accepts URLs in place of local paths; this package handles
// the download with retry on transient failures and caches the raw bytes
// so repeated plots of the same URL don't refetch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/murzabaevb/levelplot/pkg/cache"
	"github.com/murzabaevb/levelplot/pkg/errors"
)

// TTLRemote is how long fetched input bytes stay cached.
const TTLRemote = 15 * time.Minute

// maxBodySize caps downloads at 64 MiB to avoid unbounded reads.
const maxBodySize = 64 << 20

// IsURL reports whether source names a remote input.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Client fetches remote inputs with retry and caching.
type Client struct {
	HTTP  *http.Client
	Cache cache.Cache
	Keyer cache.Keyer
}

// New creates a client backed by the given cache and keyer.
// Nil arguments fall back to NullCache and DefaultKeyer.
func New(store cache.Cache, keyer cache.Keyer) *Client {
	if store == nil {
		store = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Client{
		HTTP:  &http.Client{Timeout: 30 * time.Second},
		Cache: store,
		Keyer: keyer,
	}
}

// Get downloads the URL and returns the body bytes. The second return
// reports whether the bytes came from cache. With refresh, the cache is
// bypassed and overwritten.
func (c *Client) Get(ctx context.Context, url string, refresh bool) ([]byte, bool, error) {
	key := c.Keyer.HTTPKey("source", url)

	if !refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	var body []byte
	err := Retry(ctx, 3, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to read
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeFileNotFound, "remote input not found: %s", url)
		case resp.StatusCode >= 500:
			return &RetryableError{Err: fmt.Errorf("server returned %s", resp.Status)}
		default:
			return errors.New(errors.ErrCodeInvalidInput, "fetch %s: server returned %s", url, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "fetch %s", url)
	}

	_ = c.Cache.Set(ctx, key, body, TTLRemote)
	return body, false, nil
}
