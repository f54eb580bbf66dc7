package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/theme.tar.gz":
			if !strings.HasPrefix(r.Header.Get("User-Agent"), "freedesktop-icon/") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte("archive-bytes"))
		case "/large":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("returns body", func(t *testing.T) {
		data, err := Fetch(context.Background(), srv.URL+"/theme.tar.gz", FetchOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "archive-bytes" {
			t.Errorf("got %q", data)
		}
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
			t.Error("expected error for 404")
		}
	})

	t.Run("body size is limited", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/large", FetchOptions{MaxBytes: 16}); err == nil {
			t.Error("expected error for oversized body")
		}
		if _, err := Fetch(context.Background(), srv.URL+"/large", FetchOptions{MaxBytes: 64}); err != nil {
			t.Errorf("body of exactly MaxBytes should succeed: %v", err)
		}
	})
}
