package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "SolarScope/1.0"

// APODResponse — сырой ответ APOD за одну дату.
type APODResponse struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
}

// NEOFeedResponse — лента NeoWs: словарь дата → список сближений.
type NEOFeedResponse struct {
	ElementCount     int                    `json:"element_count"`
	NearEarthObjects map[string][]NEOObject `json:"near_earth_objects"`
}

type NEOObject struct {
	Name              string `json:"name"`
	EstimatedDiameter struct {
		Meters struct {
			Min *float64 `json:"estimated_diameter_min"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	IsPotentiallyHazardous bool `json:"is_potentially_hazardous_asteroid"`
}

// CMEEvent — событие корональных выбросов из DONKI.
type CMEEvent struct {
	ActivityID     string `json:"activityID"`
	StartTime      string `json:"startTime"`
	Note           string `json:"note"`
	SourceLocation string `json:"sourceLocation"`
}

// MarsPhotosResponse — снимок latest_photos одного марсохода.
type MarsPhotosResponse struct {
	LatestPhotos []MarsPhotoItem `json:"latest_photos"`
}

type MarsPhotoItem struct {
	ID     int64  `json:"id"`
	ImgSrc string `json:"img_src"`
	Camera struct {
		FullName string `json:"full_name"`
	} `json:"camera"`
	Rover struct {
		Name string `json:"name"`
	} `json:"rover"`
	EarthDate string `json:"earth_date"`
}

type NASAClient interface {
	FetchAPOD(ctx context.Context, date string) (*APODResponse, error)
	FetchNEOFeed(ctx context.Context, startDate, endDate string) (*NEOFeedResponse, error)
	FetchDONKICME(ctx context.Context, startDate, endDate string) ([]CMEEvent, error)
	FetchLatestMarsPhotos(ctx context.Context, rover string) (*MarsPhotosResponse, error)
}

type NASAConfig struct {
	APIKey   string
	APODURL  string
	NEOURL   string
	DONKIURL string
	MarsURL  string
}

type nasaClient struct {
	cfg    NASAConfig
	client *http.Client
}

func NewNASAClient(cfg NASAConfig) NASAClient {
	return &nasaClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
	}
}

func (c *nasaClient) FetchAPOD(ctx context.Context, date string) (*APODResponse, error) {
	params := url.Values{}
	if date != "" {
		params.Add("date", date)
	}

	var data APODResponse
	if err := c.getJSON(ctx, c.cfg.APODURL, params, &data); err != nil {
		return nil, fmt.Errorf("APOD %s: %w", date, err)
	}
	return &data, nil
}

func (c *nasaClient) FetchNEOFeed(ctx context.Context, startDate, endDate string) (*NEOFeedResponse, error) {
	params := url.Values{}
	params.Add("start_date", startDate)
	params.Add("end_date", endDate)

	var data NEOFeedResponse
	if err := c.getJSON(ctx, c.cfg.NEOURL, params, &data); err != nil {
		return nil, fmt.Errorf("NEO feed: %w", err)
	}
	return &data, nil
}

func (c *nasaClient) FetchDONKICME(ctx context.Context, startDate, endDate string) ([]CMEEvent, error) {
	params := url.Values{}
	params.Add("startDate", startDate)
	params.Add("endDate", endDate)

	var events []CMEEvent
	if err := c.getJSON(ctx, c.cfg.DONKIURL, params, &events); err != nil {
		return nil, fmt.Errorf("DONKI CME: %w", err)
	}
	return events, nil
}

func (c *nasaClient) FetchLatestMarsPhotos(ctx context.Context, rover string) (*MarsPhotosResponse, error) {
	reqURL := fmt.Sprintf("%s/%s/latest_photos", c.cfg.MarsURL, rover)

	var data MarsPhotosResponse
	if err := c.getJSON(ctx, reqURL, url.Values{}, &data); err != nil {
		return nil, fmt.Errorf("Mars photos %s: %w", rover, err)
	}
	return &data, nil
}

func (c *nasaClient) getJSON(ctx context.Context, reqURL string, params url.Values, dest interface{}) error {
	if c.cfg.APIKey != "" {
		params.Add("api_key", c.cfg.APIKey)
	}
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}
