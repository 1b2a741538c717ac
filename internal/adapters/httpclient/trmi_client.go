package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TrmiClient talks to the upstream informal-market rates API. One GET per
// calendar day; retries live in the sync package, not here.
type TrmiClient struct {
	http    *http.Client
	baseURL string
	token   string
}

type trmiResponse struct {
	Tasas map[string]*float64 `json:"tasas"`
	Date  string              `json:"date"`
	Hour  int                 `json:"hour"`
}

const dayLayout = "2006-01-02"

func (c *TrmiClient) GetDayRates(ctx context.Context, date time.Time) (map[string]*float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	day := date.Format(dayLayout)
	q := u.Query()
	q.Set("date_from", day+" 00:00:01")
	q.Set("date_to", day+" 23:59:01")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for date %q: %w", day, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for date %q: %w", day, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for date %q: %s", resp.StatusCode, day, resp.Status)
	}

	var body trmiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for date %q: %w", day, err)
	}

	if body.Tasas == nil {
		return nil, fmt.Errorf("response for date %q carries no tasas map", day)
	}

	return body.Tasas, nil
}

func NewTrmiClient(httpClient *http.Client, baseURL string, token string) *TrmiClient {
	return &TrmiClient{http: httpClient, baseURL: baseURL, token: token}
}
