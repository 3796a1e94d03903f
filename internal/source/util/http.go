package util

import (
	"context"
	"fmt"
	"net/http"
)

const UserAgent = "AssetHunt/1.0 (+local)"

// Get waits for the host limiter, then issues a GET. Status >= 400 is an
// error; on success the caller owns the response body.
func Get(ctx context.Context, hc *http.Client, limiter *HostLimiter, source, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", source, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	if err := limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s get: %w", source, err)
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("%s status %d", source, res.StatusCode)
	}
	return res, nil
}
