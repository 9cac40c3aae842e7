// Package probe checks internet reachability the way Windows NCSI does: fetch
// a known URL and compare the body with the expected text.
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "Microsoft NCSI"

// Result of a connectivity check.
type Result struct {
	Online     bool
	StatusCode int
	Latency    time.Duration
	// Reason explains why the check counts as offline.
	Reason string
}

// Prober fetches the probe URL.
type Prober struct {
	client *resty.Client
	url    string
	expect string
}

func New(url, expect string, timeout time.Duration) *Prober {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	// A captive portal answers with a redirect to its login page.
	client.SetRedirectPolicy(resty.NoRedirectPolicy())
	return &Prober{client: client, url: url, expect: expect}
}

// Check performs one request. A transport failure is returned as an error;
// an unexpected answer is an offline Result.
func (p *Prober) Check(ctx context.Context) (Result, error) {
	start := time.Now()
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if resp != nil && resp.StatusCode() >= 300 && resp.StatusCode() < 400 {
		return Result{
			StatusCode: resp.StatusCode(),
			Latency:    time.Since(start),
			Reason:     "redirected to " + resp.Header().Get("Location"),
		}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w", p.url, err)
	}

	res := Result{StatusCode: resp.StatusCode(), Latency: resp.Time()}
	switch {
	case resp.StatusCode() != 200:
		res.Reason = "unexpected status " + resp.Status()
	case p.expect != "" && !strings.Contains(resp.String(), p.expect):
		res.Reason = "unexpected response body"
	default:
		res.Online = true
	}
	return res, nil
}
