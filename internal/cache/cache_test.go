package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Fetcher_Get_cachesAndRevalidates(t *testing.T) {
	const body = "globals = {}"
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	f, err := NewFetcher(t.TempDir())
	require.NoError(t, err)

	path, err := f.Get(context.Background(), server.URL, "resource.lua")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	// second fetch revalidates and serves the cached copy
	path2, err := f.Get(context.Background(), server.URL, "resource.lua")
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err = os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, 2, requests, "second request must hit the server for revalidation")
}

func Test_Fetcher_Get_badStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f, err := NewFetcher(t.TempDir())
	require.NoError(t, err)

	_, err = f.Get(context.Background(), server.URL, "missing.lua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func Test_Fetcher_GetVerified(t *testing.T) {
	const body = "content"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	f, err := NewFetcher(t.TempDir())
	require.NoError(t, err)

	sum := fmt.Sprintf("%x", sha256.Sum256([]byte(body)))
	_, err = f.GetVerified(context.Background(), server.URL, "ok.lua", sum)
	require.NoError(t, err)

	_, err = f.GetVerified(context.Background(), server.URL, "bad.lua", "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func Test_Fetcher_Get_contextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "never seen")
	}))
	defer server.Close()

	f, err := NewFetcher(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Get(ctx, server.URL, "cancelled.lua")
	require.Error(t, err)
}
