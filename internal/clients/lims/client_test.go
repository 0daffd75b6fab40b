package lims

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.Nop(), Config{
		BaseURL:  srv.URL,
		User:     "dash",
		Password: "secret",
		Timeout:  2 * time.Second,
		RetryMax: 2,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sample_project_name"); got != "Relecov" {
			t.Errorf("sample_project_name=%q", got)
		}
		if got := r.URL.Query().Get("project_field"); got != "read_length" {
			t.Errorf("project_field=%q", got)
		}
		if u, p, ok := r.BasicAuth(); !ok || u != "dash" || p != "secret" {
			t.Errorf("basic auth missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"DATA": {"150": 12, "250": "3"}}`))
	})
	got, err := c.FetchStats(context.Background(), "Relecov", "read_length")
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"150": 12, "250": 3}, got); diff != "" {
		t.Fatalf("FetchStats mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchStatsErrorReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ERROR": "Project field not defined"}`))
	})
	_, err := c.FetchStats(context.Background(), "Relecov", "nope")
	var serr *StatsError
	if !errors.As(err, &serr) {
		t.Fatalf("want *StatsError, got %v", err)
	}
	if serr.Reason != "Project field not defined" {
		t.Fatalf("reason=%q", serr.Reason)
	}
}

func TestFetchStatsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"Illumina": 4}`))
	})
	got, err := c.FetchStats(context.Background(), "Relecov", "sequencing_instrument_platform")
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if got["Illumina"] != 4 || calls.Load() != 3 {
		t.Fatalf("got=%v calls=%d", got, calls.Load())
	}
}

func TestFetchStatsGivesUp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	_, err := c.FetchStats(context.Background(), "Relecov", "read_length")
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusBadGateway {
		t.Fatalf("want HTTPError 502, got %v", err)
	}
}

func TestDecodeStats(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    map[string]int
		wantErr bool
	}{
		{name: "bare", raw: `{"a": 1, "b": 2.0}`, want: map[string]int{"a": 1, "b": 2}},
		{name: "wrapped", raw: `{"DATA": {"x": "7"}}`, want: map[string]int{"x": 7}},
		{name: "empty", raw: `{}`, want: map[string]int{}},
		{name: "bad_count", raw: `{"a": "many"}`, wantErr: true},
		{name: "not_object", raw: `[1]`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeStats([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeStats: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("DecodeStats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected missing LIMS_URL error")
	}
}
