// Package cache provides a disk-backed download cache that revalidates
// entries with conditional GET requests (ETag / Last-Modified), so that
// unchanged upstream resources are not re-downloaded between runs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wowtools/checkrc/internal/log"
)

// Fetcher downloads URLs into a cache directory. Each entry is a file named
// by the caller plus a ".meta" sidecar holding the validators from the last
// successful response.
type Fetcher struct {
	dir    string
	client *http.Client
}

type meta struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// NewFetcher creates a Fetcher rooted at the given directory, creating it
// if needed.
func NewFetcher(dir string) (*Fetcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create cache directory %s: %w", dir, err)
	}
	return &Fetcher{
		dir:    dir,
		client: &http.Client{Timeout: 90 * time.Second},
	}, nil
}

// Get downloads url into the cache under name and returns the path to the
// cached file. When the cached copy is still valid upstream (304), the
// existing file is returned without a new download.
func (f *Fetcher) Get(ctx context.Context, url, name string) (string, error) {
	return f.GetVerified(ctx, url, name, "")
}

// GetVerified is Get with an optional expected sha256 checksum (hex) for
// the downloaded content.
func (f *Fetcher) GetVerified(ctx context.Context, url, name, checksum string) (string, error) {
	cacheFile := filepath.Join(f.dir, name)
	metaFile := cacheFile + ".meta"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	if m, err := readMeta(metaFile); err == nil {
		if _, statErr := os.Stat(cacheFile); statErr == nil {
			if m.ETag != "" {
				req.Header.Set("If-None-Match", m.ETag)
			}
			if m.LastModified != "" {
				req.Header.Set("If-Modified-Since", m.LastModified)
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		if _, err := os.Stat(cacheFile); err == nil {
			log.WithFields("url", url, "asset", name).Trace("cache hit (not modified)")
			return cacheFile, nil
		}
		return "", fmt.Errorf("server reported not modified but cache file %s is missing", cacheFile)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status for %s: %s", url, resp.Status)
	}

	// take sha256 of the body and compare with checksum while copying to disk
	tmpPath := cacheFile + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	tee := io.TeeReader(resp.Body, h)

	if _, err := io.Copy(out, tee); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if checksum != "" {
		if checksum != fmt.Sprintf("%x", h.Sum(nil)) {
			os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %q", name)
		}
		log.WithFields("checksum", checksum, "asset", name, "url", url).Trace("checksum verified")
	}

	if err := os.Rename(tmpPath, cacheFile); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	writeMeta(metaFile, meta{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	})

	return cacheFile, nil
}

func readMeta(path string) (meta, error) {
	var m meta
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, err
	}
	return m, nil
}

// metadata is best effort; a failed write only costs a revalidation later
func writeMeta(path string, m meta) {
	if m == (meta{}) {
		os.Remove(path)
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil && !errors.Is(err, os.ErrPermission) {
		log.Debugf("unable to write cache metadata %s: %v", path, err)
	}
}
