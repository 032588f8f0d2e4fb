package helpers

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// HTTP header configurations
var (
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	}
)

// StatusError is returned when the upstream answers with a non-success status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s unexpected status code: %d", e.URL, e.StatusCode)
}

// Client issues GET requests against the upstream site
type Client struct {
	http *http.Client
}

// NewClient creates a client whose requests give up after timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

// Fetch sends a GET request with browser-like headers and the given query
// parameters, decodes the response body and returns it as UTF-8.
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if len(params) > 0 {
		query := target.Query()
		for key, values := range params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set browser-like headers
	rnd := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	req.Header.Set("User-Agent", userAgents[rnd.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "sq-AL,sq;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target.String(), StatusCode: resp.StatusCode}
	}

	bodyBytes, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return toUTF8(bodyBytes, resp.Header.Get("Content-Type"))
}

// readBody reads and decompresses a response body.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	default:
		reader = resp.Body
	}
	return io.ReadAll(reader)
}

// toUTF8 converts body to UTF-8 using the Content-Type header and body content.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)

	// If already UTF-8, return as is
	if name == "utf-8" || name == "UTF-8" {
		return body, nil
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, encoding.NewDecoder().Reader(bytes.NewReader(body))); err != nil {
		return nil, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}
	return buf.Bytes(), nil
}
