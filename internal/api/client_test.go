package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, func() string { return "tok-123" }, nil)
	if _, _, err := c.Do(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

func TestDoSkipsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, func() string { return "" }, nil)
	if _, _, err := c.Do(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("authorization = %q, want empty", gotAuth)
	}
}

func TestUnauthorizedRunsHookAndReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hooked := 0
	c := NewClient(srv.URL, nil, func() string { return "stale" }, func() { hooked++ })

	_, _, err := c.Do(context.Background(), http.MethodGet, "/me", nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if hooked != 1 {
		t.Fatalf("hook calls = %d, want 1", hooked)
	}
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parking/lots" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"id": "lot-central"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, nil, nil)
	var out []struct {
		ID string `json:"id"`
	}
	if err := c.GetJSON(context.Background(), "/parking/lots", &out); err != nil {
		t.Fatalf("getJSON: %v", err)
	}
	if len(out) != 1 || out[0].ID != "lot-central" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestGetJSONReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, nil, nil)
	var out any
	if err := c.GetJSON(context.Background(), "/fail", &out); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestPostJSONSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if in["slotId"] != "A-1" {
			t.Errorf("body = %v", in)
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, nil, nil)
	var out map[string]string
	if err := c.PostJSON(context.Background(), "/bookings", map[string]string{"slotId": "A-1"}, &out); err != nil {
		t.Fatalf("postJSON: %v", err)
	}
	if out["ok"] != "true" {
		t.Fatalf("response %v", out)
	}
}
