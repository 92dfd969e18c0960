// Package tutor answers "explain this topic" requests: a Wikipedia lookup
// (search, then extract — two sequential calls) plus curated study
// resource links. It returns plain data; rendering belongs to the caller.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://en.wikipedia.org/w/api.php"

	// Wikipedia blocks anonymous default agents, so always identify.
	userAgent = "studybuddy/1.0 (educational)"
)

// ErrNoResult means the search returned nothing for the topic.
var ErrNoResult = errors.New("no wikipedia result")

// WikiClient talks to the Wikipedia action API.
type WikiClient struct {
	http    *resty.Client
	baseURL string
}

func NewWikiClient(baseURL string) *WikiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", userAgent)
	return &WikiClient{http: client, baseURL: baseURL}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// Search returns the best-match page title and id for a topic.
func (c *WikiClient) Search(ctx context.Context, topic string) (string, int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":   "query",
			"list":     "search",
			"srsearch": topic,
			"format":   "json",
		}).
		Get(c.baseURL)
	if err != nil {
		return "", 0, fmt.Errorf("wikipedia search: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", 0, fmt.Errorf("wikipedia search: status %d", resp.StatusCode())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", 0, fmt.Errorf("parse search response: %w", err)
	}
	if len(result.Query.Search) == 0 {
		return "", 0, ErrNoResult
	}

	best := result.Query.Search[0]
	return best.Title, best.PageID, nil
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Extract fetches the plain-text intro of a page, limited to the given
// number of sentences.
func (c *WikiClient) Extract(ctx context.Context, title string, sentences int) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":      "query",
			"prop":        "extracts",
			"exsentences": strconv.Itoa(sentences),
			"exlimit":     "1",
			"titles":      title,
			"explaintext": "1",
			"format":      "json",
		}).
		Get(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("wikipedia extract: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("wikipedia extract: status %d", resp.StatusCode())
	}

	var result extractResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("parse extract response: %w", err)
	}
	for _, page := range result.Query.Pages {
		if page.Extract != "" {
			return page.Extract, nil
		}
	}
	return "", fmt.Errorf("wikipedia extract: empty extract for %q", title)
}
