package workbook

import (
	"bytes"
	"context"
	"fmt"
	"sync"
)

// Fetcher downloads a document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Remote is a workbook published at a URL. Listing sheets downloads a fresh
// copy; reads use the copy fetched by the last listing.
type Remote struct {
	url     string
	fetcher Fetcher

	mu      sync.Mutex
	current *File
}

// NewRemote builds a remote workbook.
func NewRemote(url string, fetcher Fetcher) *Remote {
	return &Remote{url: url, fetcher: fetcher}
}

// ID identifies the workbook by URL.
func (r *Remote) ID() string {
	return "url:" + r.url
}

// SheetNames downloads the workbook and lists its sheets.
func (r *Remote) SheetNames(ctx context.Context) ([]string, error) {
	body, err := r.fetcher.Fetch(ctx, r.url)
	if err != nil {
		return nil, err
	}

	f, err := OpenReader(r.ID(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	prev := r.current
	r.current = f
	r.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}

	return f.SheetNames(ctx)
}

// ReadSheet reads a sheet of the last downloaded copy, downloading one if needed.
func (r *Remote) ReadSheet(ctx context.Context, name string) ([][]interface{}, error) {
	r.mu.Lock()
	f := r.current
	r.mu.Unlock()

	if f == nil {
		if _, err := r.SheetNames(ctx); err != nil {
			return nil, fmt.Errorf("download before reading %s: %w", name, err)
		}
		r.mu.Lock()
		f = r.current
		r.mu.Unlock()
	}

	return f.ReadSheet(ctx, name)
}

// Close releases the last downloaded copy.
func (r *Remote) Close() error {
	r.mu.Lock()
	f := r.current
	r.current = nil
	r.mu.Unlock()

	if f == nil {
		return nil
	}
	return f.Close()
}
