package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.config.APIKey)

	fullURL := fmt.Sprintf("%s%s?%s", BaseURL, endpoint, params.Encode())

	// Log the request without the API key
	log.Printf("TMDb API request: %s%s", BaseURL, endpoint)

	resp, err := c.httpClient.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("TMDb API error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("tmdb api error: status %d", resp.StatusCode)
	}

	return body, nil
}

func (c *Client) SearchMovies(query string) (*MovieSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	body, err := c.get("/search/movie", params)
	if err != nil {
		return nil, err
	}

	var result MovieSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &result, nil
}

func (c *Client) GetMovieDetails(tmdbID int) (*MovieDetails, error) {
	endpoint := fmt.Sprintf("/movie/%d", tmdbID)

	body, err := c.get(endpoint, nil)
	if err != nil {
		return nil, err
	}

	var details MovieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &details, nil
}
