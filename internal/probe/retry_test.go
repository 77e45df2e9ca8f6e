package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fake prober you can control
type fakeProber struct {
	errs []error
	i    int
}

func (f *fakeProber) Probe(ctx context.Context) error {
	if f.i >= len(f.errs) {
		return errors.New("no more")
	}
	err := f.errs[f.i]
	f.i++
	return err
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	f := &fakeProber{errs: []error{errors.New("first fail"), nil}}
	r := &Retry{Inner: f, Attempts: 3, Backoff: 10 * time.Millisecond}

	if err := r.Probe(context.Background()); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if f.i != 2 {
		t.Fatalf("expected 2 attempts, got %d", f.i)
	}
}

func TestRetry_AllFailAnnotates(t *testing.T) {
	f := &fakeProber{errs: []error{errors.New("fail1"), errors.New("fail2")}}
	r := &Retry{Inner: f, Attempts: 2, Backoff: 0}

	err := r.Probe(context.Background())
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected attempt annotation, got %q", err.Error())
	}
}
