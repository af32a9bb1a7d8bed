// Package feed pulls catalog and directory data from external HTTP
// sources and hands it to the store as one-shot bulk loads.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single feed request.
const DefaultTimeout = 15 * time.Second

// Error wraps a feed failure with the feed that produced it.
type Error struct {
	Feed string
	Err  error
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("feed %s: %v", e.Feed, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func wrapErr(feed string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Feed: feed, Err: err}
}

// getJSON fetches url with a bounded request and decodes the body into
// out.
func getJSON(ctx context.Context, client *http.Client, timeout time.Duration, url string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
