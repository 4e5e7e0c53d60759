// Package stepik provides a read-only client for the Stepik course API.
package stepik

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Stepik API root.
const DefaultBaseURL = "https://stepik.org/api"

const userAgent = "coursegrid/1.0"

// ErrNotFound is returned when the API has no record for the requested id.
var ErrNotFound = errors.New("record not found")

// StatusError reports an unexpected HTTP status from the API.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Stepik API returned %d for %s", e.Code, e.URL)
	}
	return fmt.Sprintf("Stepik API returned %d for %s: %s", e.Code, e.URL, e.Body)
}

// Client fetches one record per request from the Stepik API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// NewClient creates a client for the given API root. An empty baseURL selects
// DefaultBaseURL. The default HTTP transport is used with no timeout.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Log:     log.With().Str("component", "stepik").Logger(),
	}
}

// Course fetches a course by id.
func (c *Client) Course(ctx context.Context, id int) (*Course, error) {
	var res coursesResponse
	if err := c.get(ctx, "courses", id, &res); err != nil {
		return nil, err
	}
	if len(res.Courses) == 0 {
		return nil, ErrNotFound
	}
	return &res.Courses[0], nil
}

// Section fetches a section by id.
func (c *Client) Section(ctx context.Context, id int) (*Section, error) {
	var res sectionsResponse
	if err := c.get(ctx, "sections", id, &res); err != nil {
		return nil, err
	}
	if len(res.Sections) == 0 {
		return nil, ErrNotFound
	}
	return &res.Sections[0], nil
}

// Unit fetches a unit by id. A unit without a lesson reference is an error.
func (c *Client) Unit(ctx context.Context, id int) (*Unit, error) {
	var res unitsResponse
	if err := c.get(ctx, "units", id, &res); err != nil {
		return nil, err
	}
	if len(res.Units) == 0 {
		return nil, ErrNotFound
	}
	if res.Units[0].Lesson == 0 {
		return nil, errors.New("missing lesson reference")
	}
	return &res.Units[0], nil
}

// Lesson fetches a lesson by id.
func (c *Client) Lesson(ctx context.Context, id int) (*Lesson, error) {
	var res lessonsResponse
	if err := c.get(ctx, "lessons", id, &res); err != nil {
		return nil, err
	}
	if len(res.Lessons) == 0 {
		return nil, ErrNotFound
	}
	return &res.Lessons[0], nil
}

func (c *Client) get(ctx context.Context, collection string, id int, out any) error {
	endpoint := fmt.Sprintf("%s/%s/%d", c.BaseURL, collection, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("entity", collection).
		Int("id", id).
		Int("status", resp.StatusCode).
		Msg("fetched")

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, URL: endpoint, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse response: %w", err)
	}
	return nil
}
