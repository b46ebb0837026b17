// Package openlibrary queries the Open Library search API to resolve cover
// image URLs for book titles.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// coversURLTemplate is the Open Library covers host pattern for the large
// image size. The identifier comes from search results.
const coversURLTemplate = "https://covers.openlibrary.org/b/id/%d-L.jpg"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(baseURL, userAgent string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   baseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// searchResponse matches search.json
type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		CoverID int `json:"cover_i"`
	} `json:"docs"`
}

// CoverByTitle searches for the title and derives the cover image URL from
// the first match carrying a cover identifier. An empty URL with a nil error
// means the search succeeded but no match had a cover.
func (c *Client) CoverByTitle(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	searchURL := fmt.Sprintf("%s/search.json?title=%s", c.baseURL, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search title: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	for _, doc := range result.Docs {
		if doc.CoverID != 0 {
			return fmt.Sprintf(coversURLTemplate, doc.CoverID), nil
		}
	}
	return "", nil
}
