// Package funds serves Indian mutual fund data from the public mfapi.in
// API. Trailing returns are computed from the NAV series; a synthetic
// fallback keeps the endpoints answering when the upstream is down.
package funds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var errEmptySeries = errors.New("mfapi: empty nav series")

const defaultMfapiBaseURL = "https://api.mfapi.in"

// MfapiClient talks to the mfapi.in scheme and search endpoints.
type MfapiClient struct {
	cli     *http.Client
	baseURL string
}

func NewMfapiClient() *MfapiClient {
	return &MfapiClient{
		cli:     &http.Client{Timeout: 8 * time.Second},
		baseURL: defaultMfapiBaseURL,
	}
}

// NewMfapiClientWithBaseURL is used by tests to point the client at a
// local httptest server.
func NewMfapiClientWithBaseURL(baseURL string) *MfapiClient {
	c := NewMfapiClient()
	c.baseURL = baseURL
	return c
}

// schemeResponse matches the mfapi.in /mf/{code} payload. NAV values come
// back as strings and dates as DD-MM-YYYY; the series is newest first.
type schemeResponse struct {
	Meta struct {
		FundHouse      string `json:"fund_house"`
		SchemeType     string `json:"scheme_type"`
		SchemeCategory string `json:"scheme_category"`
		SchemeCode     int64  `json:"scheme_code"`
		SchemeName     string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

type searchResult struct {
	SchemeCode int64  `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

func (c *MfapiClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "insight/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mfapi http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Scheme fetches the full NAV history for a scheme code.
func (c *MfapiClient) Scheme(ctx context.Context, code string) (*schemeResponse, error) {
	var raw schemeResponse
	if err := c.get(ctx, fmt.Sprintf("%s/mf/%s", c.baseURL, url.PathEscape(code)), &raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 {
		return nil, errEmptySeries
	}
	return &raw, nil
}

// Search queries mfapi.in by scheme name fragment.
func (c *MfapiClient) Search(ctx context.Context, query string) ([]searchResult, error) {
	var results []searchResult
	u := fmt.Sprintf("%s/mf/search?q=%s", c.baseURL, url.QueryEscape(query))
	if err := c.get(ctx, u, &results); err != nil {
		return nil, err
	}
	return results, nil
}
