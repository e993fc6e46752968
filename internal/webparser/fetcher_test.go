package webparser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, "TestBrowser/1.0", 1)
	html, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "ok")
	assert.Equal(t, "TestBrowser/1.0", gotUA)
	assert.Contains(t, gotLang, "ru")
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetch_RejectsInvalidURLWithoutRequest(t *testing.T) {
	f := NewFetcher(time.Second, "ua", 1)
	for _, raw := range []string{"", "not a url", "ftp://example.com/file", "/relative/path", "http://"} {
		_, err := f.Fetch(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", raw)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second, "ua", 1).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := NewFetcher(50*time.Millisecond, "ua", 1).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_FollowsRedirects(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("<html><body>moved here</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	html, err := NewFetcher(time.Second, "ua", 1).Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Contains(t, html, "moved here")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetch_SizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 1024*1024+10)))
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second, "ua", 1).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFetch_DecodesDeclaredCharset(t *testing.T) {
	// "Привет" in windows-1251
	cp1251 := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		w.Write([]byte("<html><body><h1>"))
		w.Write(cp1251)
		w.Write([]byte("</h1></body></html>"))
	}))
	defer srv.Close()

	html, err := NewFetcher(time.Second, "ua", 1).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Привет")
}
