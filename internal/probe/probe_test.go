package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

func TestHealth_OK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer s.Close()

	if err := Health(s.URL, 2*time.Second).Probe(context.Background()); err != nil {
		t.Fatalf("want pass, got %v", err)
	}
}

func TestHealth_MissingStatusField(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer s.Close()

	err := Health(s.URL, 2*time.Second).Probe(context.Background())
	if err == nil {
		t.Fatalf("want failure for missing status field")
	}
	if check.KindOf(err) != check.KindInvalidResponse {
		t.Fatalf("want invalid_response, got %q", check.KindOf(err))
	}
}

func TestHealth_NonJSONBody(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer s.Close()

	err := Health(s.URL, 2*time.Second).Probe(context.Background())
	if check.KindOf(err) != check.KindInvalidResponse {
		t.Fatalf("want invalid_response, got %v", err)
	}
}

func TestHealth_TimeoutRecordedAsFailure(t *testing.T) {
	// Server sleeps past the probe budget; the probe must fail with a
	// timeout, not hang.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer s.Close()

	start := time.Now()
	err := Health(s.URL, 50*time.Millisecond).Probe(context.Background())
	if err == nil {
		t.Fatalf("want timeout failure")
	}
	if check.KindOf(err) != check.KindTimeout {
		t.Fatalf("want timeout, got %q (%v)", check.KindOf(err), err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("probe hung past its budget")
	}
}

func TestProbe_ConnectionRefused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	err := Status(url, "/", 2*time.Second).Probe(context.Background())
	if check.KindOf(err) != check.KindNetwork {
		t.Fatalf("want network_error, got %v", err)
	}
}

func TestRoot_NotReady(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"service":"crypto-intel-engine","status":"starting","ready":false}`))
	}))
	defer s.Close()

	err := Root(s.URL, 2*time.Second).Probe(context.Background())
	if err == nil {
		t.Fatalf("want failure for ready=false")
	}
}

func TestRemote_RunsThroughRunner(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"healthy"}`))
		case "/":
			w.Write([]byte(`{"service":"crypto-intel-engine","status":"running","ready":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer s.Close()

	runner := &check.Runner{}
	summary := runner.RunConcurrent(context.Background(), Remote(s.URL, 2*time.Second))
	if !summary.AllPassed {
		t.Fatalf("want all passed, got %+v", summary.Failures())
	}
}
