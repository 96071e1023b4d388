package volumio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API defines the player operations the panel relies on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListPlaylists(ctx context.Context) ([]string, error)
	Browse(ctx context.Context, uri string) (*BrowseResponse, error)
	PlayPlaylist(ctx context.Context, name string) error
	SendCommand(ctx context.Context, cmd string) error
	SetVolume(ctx context.Context, volume int) error
	ReplaceAndPlay(ctx context.Context, items []EnqueueItem) (ReplaceAndPlayResponse, error)
	GetState(ctx context.Context) (*PlayerState, error)
	GetQueue(ctx context.Context) ([]QueueItem, error)
	Host() string
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the player's REST API.
type Client struct {
	baseURL   *url.URL
	apiPath   string
	http      *http.Client
	userAgent string
}

// ClientOptions tune a Client. Zero values use defaults.
type ClientOptions struct {
	APIPath string
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration
}

const (
	defaultPlayerURL = "http://volumio.local"
	defaultAPIPath   = "/api/v1"
	defaultUserAgent = "jukebox/0.1"
)

// NewClient builds a Client for the player at playerURL (host, host:port or
// full URL; any path is dropped).
func NewClient(playerURL string, opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(playerURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		apiPath: normalizeAPIPath(opts.APIPath),
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Host returns the player host[:port], used to absolutize album art paths.
func (c *Client) Host() string {
	if c == nil {
		return ""
	}
	return c.baseURL.Host
}

// ListPlaylists retrieves the ordered playlist names.
func (c *Client) ListPlaylists(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.Request(ctx, http.MethodGet, "/listplaylists", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Browse lists the sources when uri is empty, or the contents of uri.
func (c *Client) Browse(ctx context.Context, uri string) (*BrowseResponse, error) {
	endpoint := "/browse"
	if uri != "" {
		endpoint = withQuery(endpoint, url.Values{"uri": {uri}})
	}
	var payload BrowseResponse
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PlayPlaylist replaces the queue with the named playlist and starts it.
func (c *Client) PlayPlaylist(ctx context.Context, name string) error {
	return c.command(ctx, CmdPlayPlaylist, url.Values{"name": {name}})
}

// SendCommand issues a transport command such as play, pause or stop. A
// command written as "name&key=value" is sent as cmd=name with the trailing
// pairs as extra query parameters, so "volume&volume=50" sets the volume.
func (c *Client) SendCommand(ctx context.Context, cmd string) error {
	name, rest, _ := strings.Cut(strings.TrimSpace(cmd), "&")
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("command is empty")
	}
	params, err := url.ParseQuery(rest)
	if err != nil {
		return fmt.Errorf("command %q: %w", cmd, err)
	}
	params.Del("cmd")
	return c.command(ctx, name, params)
}

// SetVolume sets the output volume.
func (c *Client) SetVolume(ctx context.Context, volume int) error {
	return c.command(ctx, CmdVolume, url.Values{"volume": {strconv.Itoa(volume)}})
}

// ReplaceAndPlay replaces the queue with items and plays the first one.
func (c *Client) ReplaceAndPlay(ctx context.Context, items []EnqueueItem) (ReplaceAndPlayResponse, error) {
	body := ReplaceAndPlayRequest{List: items, Index: 0}
	var payload ReplaceAndPlayResponse
	if err := c.Request(ctx, http.MethodPost, "/replaceAndPlay", body, &payload); err != nil {
		return ReplaceAndPlayResponse{}, err
	}
	return payload, nil
}

// GetState retrieves the current player snapshot.
func (c *Client) GetState(ctx context.Context) (*PlayerState, error) {
	var payload PlayerState
	if err := c.Request(ctx, http.MethodGet, "/getState", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetQueue retrieves the current play queue.
func (c *Client) GetQueue(ctx context.Context) ([]QueueItem, error) {
	var payload QueueResponse
	if err := c.Request(ctx, http.MethodGet, "/getQueue", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Queue, nil
}

func (c *Client) command(ctx context.Context, cmd string, params url.Values) error {
	values := url.Values{}
	for k, v := range params {
		values[k] = v
	}
	values.Set("cmd", cmd)
	return c.Request(ctx, http.MethodGet, withQuery("/commands/", values), nil, nil)
}

// Request performs one call against the API root. endpoint is relative to the
// API path and may carry a query string. A non-nil body is sent as JSON; a
// non-nil dest receives the decoded response. Failures are logged and
// returned as *NetworkError, *HTTPStatusError or *ParseError.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	rel.Path = c.apiPath + rel.Path
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.execute(req, endpoint, dest); err != nil {
		log.Printf("api %s %s failed (request %s): %v", method, endpoint, requestID, err)
		return err
	}
	return nil
}

func (c *Client) execute(req *http.Request, endpoint string, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func normalizeAPIPath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return defaultAPIPath
	}
	return "/" + trimmed
}

func parseBaseURL(playerURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(playerURL)
	if trimmed == "" {
		trimmed = defaultPlayerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse player_url %q: %w", playerURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse player_url %q: missing host", playerURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
