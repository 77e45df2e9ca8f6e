package probe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

// Health probes GET /health and expects a 200 with a JSON body carrying a
// non-empty status field.
func Health(baseURL string, timeout time.Duration) *HTTP {
	return &HTTP{
		BaseURL: baseURL,
		Path:    "/health",
		Timeout: timeout,
		Validate: func(status int, body []byte) error {
			if status != http.StatusOK {
				return check.Fail(check.KindInvalidResponse,
					fmt.Sprintf("/health returned %d, body: %s", status, trim(body)))
			}
			var h struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(body, &h); err != nil {
				return check.Wrap(check.KindInvalidResponse, "/health body is not JSON", err)
			}
			if h.Status == "" {
				return check.Fail(check.KindInvalidResponse, "/health JSON lacks a status field")
			}
			return nil
		},
	}
}

// Root probes GET / and expects the service banner: JSON with service,
// status, and ready=true.
func Root(baseURL string, timeout time.Duration) *HTTP {
	return &HTTP{
		BaseURL: baseURL,
		Path:    "/",
		Timeout: timeout,
		Validate: func(status int, body []byte) error {
			if status != http.StatusOK {
				return check.Fail(check.KindInvalidResponse,
					fmt.Sprintf("/ returned %d, body: %s", status, trim(body)))
			}
			var r struct {
				Service string `json:"service"`
				Status  string `json:"status"`
				Ready   bool   `json:"ready"`
			}
			if err := json.Unmarshal(body, &r); err != nil {
				return check.Wrap(check.KindInvalidResponse, "/ body is not JSON", err)
			}
			if r.Service == "" || r.Status == "" {
				return check.Fail(check.KindInvalidResponse, "/ JSON lacks service/status fields")
			}
			if !r.Ready {
				return check.Fail(check.KindInvalidResponse, "service reports ready=false")
			}
			return nil
		},
	}
}

// Status probes an arbitrary path and accepts any 2xx.
func Status(baseURL, path string, timeout time.Duration) *HTTP {
	return &HTTP{BaseURL: baseURL, Path: path, Timeout: timeout}
}

// Remote assembles the live verification registry for a deployed instance.
func Remote(baseURL string, timeout time.Duration) check.Registry {
	return check.Registry{
		AsCheck("health endpoint", Health(baseURL, timeout),
			"Check the deployment logs; the server may still be starting"),
		AsCheck("root endpoint", Root(baseURL, timeout),
			"Verify the server bound to the platform-assigned port"),
	}
}

func trim(body []byte) string {
	const n = 200
	if len(body) > n {
		return string(body[:n]) + "..."
	}
	return string(body)
}
