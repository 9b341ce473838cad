package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EONETResponse — ответ EONET v3 со списком природных событий.
type EONETResponse struct {
	Events []EONETEvent `json:"events"`
}

type EONETEvent struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Categories []EONETCategory `json:"categories"`
	Geometry   []EONETGeometry `json:"geometry"`
}

type EONETCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Coordinates оставляем сырым JSON: для точек это [lon, lat], для полигонов —
// вложенные массивы; в базу пара уходит как есть (jsonb).
type EONETGeometry struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type EONETClient interface {
	FetchEvents(ctx context.Context) (*EONETResponse, error)
}

type eonetClient struct {
	baseURL string
	client  *http.Client
}

func NewEONETClient(baseURL string) EONETClient {
	return &eonetClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *eonetClient) FetchEvents(ctx context.Context) (*EONETResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
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
		return nil, fmt.Errorf("EONET API returned status %d", resp.StatusCode)
	}

	var data EONETResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return &data, nil
}
