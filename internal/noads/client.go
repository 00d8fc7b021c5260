// Package noads implements the delegated recipe parsing backend. The heavy
// HTML extraction happens on NoAdsRecipe's side; this client mirrors their
// expected traffic pattern and normalizes the semi-structured JSON reply.
package noads

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
)

const DefaultBaseURL = "https://noadsrecipe.com"

type Client struct {
	baseURL string
	client  *http.Client
}

type Option func(*Client)

// WithInsecureTLS skips certificate verification against the backend. The
// hosted backend has served incomplete chains in the past; this is a
// compatibility workaround, not a recommendation.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		c.client.Transport = transport
	}
}

func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchResponse struct {
	Title        string          `json:"title"`
	ImageURL     string          `json:"imageURL"`
	Ingredients  json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
	Directions   json.RawMessage `json:"directions"`
	Servings     int             `json:"servings"`
}

// Fetch asks the backend to parse sourceURL and assembles the canonical
// recipe. An incomplete payload yields recipe.ErrUnparsable; transport
// failures surface as *httpx.FetchError.
func (c *Client) Fetch(ctx context.Context, sourceURL string) (*recipe.Parsed, error) {
	encoded := url.QueryEscape(sourceURL)

	// Page view first, to align with the backend's own flow. Best effort:
	// the recipe data comes from the API call below.
	if _, err := c.get(ctx, c.baseURL+"/recipe?url="+encoded); err != nil {
		slog.Debug("noads page view failed", "url", sourceURL, "error", err)
	}

	body, err := c.get(ctx, c.baseURL+"/api/fetch?url="+encoded)
	if err != nil {
		return nil, err
	}

	var data fetchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", recipe.ErrUnparsable, err)
	}

	directions := data.Instructions
	if len(directions) == 0 || string(directions) == "null" {
		directions = data.Directions
	}

	return recipe.Finalize(&recipe.Parsed{
		Title:       data.Title,
		Servings:    data.Servings,
		ImageURL:    data.ImageURL,
		Ingredients: normalizeList(data.Ingredients),
		Directions:  normalizeList(directions),
		SourceURL:   sourceURL,
	})
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("x-preserve-url-encoding", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &httpx.FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpx.FetchError{Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

var lineSplitRe = regexp.MustCompile(`\r?\n`)

// normalizeList accepts the three shapes the backend emits for list fields:
// a newline-delimited string, an array of strings, or an array of {text}
// objects.
func normalizeList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err == nil {
		var lines []string
		for _, entry := range entries {
			var s string
			if err := json.Unmarshal(entry, &s); err == nil {
				lines = append(lines, s)
				continue
			}
			var obj struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(entry, &obj); err == nil && obj.Text != "" {
				lines = append(lines, obj.Text)
			}
		}
		return recipe.NormalizeLines(lines)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return recipe.NormalizeLines(lineSplitRe.Split(s, -1))
	}
	return nil
}
