package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const exoplanetQuery = "SELECT pl_name, pl_rade FROM ps"

// ExoplanetRecord — строка ответа TAP-запроса к Exoplanet Archive.
// pl_rade бывает null, поэтому указатель.
type ExoplanetRecord struct {
	Name   string   `json:"pl_name"`
	Radius *float64 `json:"pl_rade"`
}

type ExoplanetClient interface {
	FetchPlanets(ctx context.Context) ([]ExoplanetRecord, error)
}

type exoplanetClient struct {
	baseURL string
	client  *http.Client
}

func NewExoplanetClient(baseURL string) ExoplanetClient {
	return &exoplanetClient{
		baseURL: baseURL,
		// Каталог большой, архив отвечает медленнее остальных API
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *exoplanetClient) FetchPlanets(ctx context.Context) ([]ExoplanetRecord, error) {
	params := url.Values{}
	params.Add("query", exoplanetQuery)
	params.Add("format", "json")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exoplanet archive returned status %d", resp.StatusCode)
	}

	var planets []ExoplanetRecord
	if err := json.NewDecoder(resp.Body).Decode(&planets); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return planets, nil
}
