package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup_FirstCandidateWins(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("limit = %q, want 1", r.URL.Query().Get("limit"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"},{"lat":"0","lon":"0"}]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	out := c.Lookup(context.Background(), "Paris, France")

	if gotQuery != "Paris, France" {
		t.Errorf("query = %q", gotQuery)
	}
	if out.Status != Resolved {
		t.Fatalf("status = %v, want Resolved (err: %v)", out.Status, out.Err)
	}
	if out.Coords == nil || out.Coords.Lat != 48.8566 || out.Coords.Lng != 2.3522 {
		t.Errorf("coords = %+v", out.Coords)
	}
}

func TestLookup_EmptyResultIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	out := NewClient(WithBaseURL(srv.URL)).Lookup(context.Background(), "Nowhere")
	if out.Status != NoMatch {
		t.Errorf("status = %v, want NoMatch", out.Status)
	}
	if out.Coords != nil {
		t.Errorf("coords = %+v, want nil", out.Coords)
	}
}

func TestLookup_EmptyQuerySkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty query")
	}))
	defer srv.Close()

	out := NewClient(WithBaseURL(srv.URL)).Lookup(context.Background(), "   ")
	if out.Status != NoMatch {
		t.Errorf("status = %v, want NoMatch", out.Status)
	}
}

func TestLookup_FailuresFoldIntoTransportError(t *testing.T) {
	badStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer badStatus.Close()

	badBody := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer badBody.Close()

	badCoords := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"north","lon":"south"}]`))
	}))
	defer badCoords.Close()

	down := httptest.NewServer(nil)
	down.Close() // connection refused

	for _, tc := range []struct {
		name string
		url  string
	}{
		{"http 503", badStatus.URL},
		{"malformed body", badBody.URL},
		{"unparseable coordinates", badCoords.URL},
		{"connection refused", down.URL},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := NewClient(WithBaseURL(tc.url)).Lookup(context.Background(), "Paris")
			if out.Status != TransportError {
				t.Errorf("status = %v, want TransportError", out.Status)
			}
			if out.Err == nil {
				t.Error("expected a cause on TransportError")
			}
		})
	}
}
