package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

// Prober issues one live request against a running service.
type Prober interface {
	Probe(ctx context.Context) error
}

const maxBody = 1 << 20 // cap response reads at 1MB

// HTTP is a single remote probe: one request, one validation. A network
// error or timeout is a classified failure, never a fault of the caller.
type HTTP struct {
	BaseURL string
	Path    string
	Method  string
	Timeout time.Duration
	Client  *http.Client

	// Validate inspects the response; nil accepts any 2xx status.
	Validate func(status int, body []byte) error
}

func (p *HTTP) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

func (p *HTTP) Probe(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := p.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+p.Path, nil)
	if err != nil {
		return check.Wrap(check.KindNetwork, "build request", err)
	}

	resp, err := p.client().Do(req)
	if err != nil {
		return check.Wrap(check.ClassifyNet(err), p.Path+" unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return check.Wrap(check.ClassifyNet(err), p.Path+" body read failed", err)
	}

	if p.Validate != nil {
		return p.Validate(resp.StatusCode, body)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return check.Fail(check.KindInvalidResponse,
			fmt.Sprintf("%s returned %d", p.Path, resp.StatusCode))
	}
	return nil
}

// AsCheck adapts a prober into a registry check.
func AsCheck(name string, p Prober, remediation string) check.Check {
	return check.New(name, p.Probe, remediation)
}
