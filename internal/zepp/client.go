// Package zepp is the transport boundary to the Zepp/Huami cloud API. It
// issues authenticated HTTP requests and returns parsed JSON or a classified
// error; all payload decoding and normalization happens in internal/health.
package zepp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Regions maps region keys to API base URLs.
var Regions = map[string]string{
	"us":     "https://api-mifit-us2.zepp.com",
	"global": "https://api-mifit.huami.com",
	"eu":     "https://api-mifit-de2.zepp.com",
}

// DefaultBaseURL is the US region endpoint.
const DefaultBaseURL = "https://api-mifit-us2.zepp.com"

const tokenHelp = "get a fresh token from https://user.huami.com/privacy/index.html or run: zeppex login"

// Config holds the credentials and endpoint for a Client.
type Config struct {
	Token   string
	UserID  string
	BaseURL string // defaults to the US region when empty
}

// Client is an authenticated Zepp/Huami cloud API client.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates the credentials and returns a Client. A missing token
// is an *AuthError so callers can route the user to login.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, &AuthError{Message: "no token provided; " + tokenHelp}
	}
	if cfg.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}, nil
}

// UserID returns the configured numeric user id.
func (c *Client) UserID() string { return c.cfg.UserID }

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// webHeaders is the header set for the band_data web endpoint.
func (c *Client) webHeaders() http.Header {
	return http.Header{
		"Apptoken":    {c.cfg.Token},
		"Appplatform": {"web"},
		"Appname":     {"com.xiaomi.hm.health"},
	}
}

// iosHeaders is the header set for the events and watch statistics endpoints.
func (c *Client) iosHeaders() http.Header {
	return http.Header{
		"Apptoken":    {c.cfg.Token},
		"Appplatform": {"ios_phone"},
		"Appname":     {"com.huami.midong"},
		"V":           {"2.0"},
		"Timezone":    {"America/Chicago"},
		"Accept":      {"*/*"},
	}
}

// Fetch issues an authenticated GET and returns the raw JSON body. Errors are
// classified: 401 is an *AuthError, other non-200 statuses and malformed JSON
// bodies are *APIError (with status when available), and network failures are
// *TransportError.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values, headers http.Header) (json.RawMessage, error) {
	u := c.cfg.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if headers == nil {
		headers = c.webHeaders()
	}
	req.Header = headers

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Message: "token expired; " + tokenHelp}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: truncate(string(body), 500)}
	}
	if !json.Valid(body) {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "invalid JSON response"}
	}
	return json.RawMessage(body), nil
}

// BandDay is one raw day entry from the band_data endpoint. Summary is a
// base64-encoded JSON blob; DataHR is base64-encoded binary; Data is the
// undocumented activity byte array.
type BandDay struct {
	Date    string `json:"date_time"`
	Summary string `json:"summary"`
	DataHR  string `json:"data_hr"`
	Data    string `json:"data"`
}

// bandDataEnvelope is the band_data response wrapper. A code other than 1
// signals an application-level failure even under HTTP 200.
type bandDataEnvelope struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    []BandDay `json:"data"`
}

// BandData fetches the raw day entries for an inclusive date range. Dates are
// YYYY-MM-DD. This is the primary health endpoint: heart rate timelines and
// the steps/sleep summary blob both live here.
func (c *Client) BandData(ctx context.Context, fromDate, toDate string) ([]BandDay, error) {
	params := url.Values{
		"query_type":  {"detail"},
		"device_type": {"android_phone"},
		"userid":      {c.cfg.UserID},
		"from_date":   {fromDate},
		"to_date":     {toDate},
	}

	raw, err := c.Fetch(ctx, "/v1/data/band_data.json", params, c.webHeaders())
	if err != nil {
		return nil, err
	}

	var envelope bandDataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: fmt.Sprintf("unexpected band_data shape: %v", err)}
	}
	if envelope.Code != 1 {
		msg := envelope.Message
		if msg == "" {
			msg = "unknown"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: "API error: " + msg}
	}
	return envelope.Data, nil
}

type itemsEnvelope struct {
	Items []json.RawMessage `json:"items"`
}

// EventsV1 fetches events from /users/{userId}/events. subType may be empty.
func (c *Client) EventsV1(ctx context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
	params := url.Values{
		"eventType": {eventType},
		"from":      {strconv.FormatInt(fromMs, 10)},
		"to":        {strconv.FormatInt(toMs, 10)},
		"limit":     {strconv.Itoa(limit)},
	}
	if subType != "" {
		params.Set("subType", subType)
	}

	raw, err := c.Fetch(ctx, "/users/"+c.cfg.UserID+"/events", params, c.iosHeaders())
	if err != nil {
		return nil, err
	}
	return unmarshalItems(raw)
}

// EventsV2 fetches events from /v2/users/me/events.
func (c *Client) EventsV2(ctx context.Context, eventType, subType string, fromMs, toMs int64, limit int) ([]json.RawMessage, error) {
	params := url.Values{
		"eventType": {eventType},
		"subType":   {subType},
		"from":      {strconv.FormatInt(fromMs, 10)},
		"to":        {strconv.FormatInt(toMs, 10)},
		"limit":     {strconv.Itoa(limit)},
	}

	raw, err := c.Fetch(ctx, "/v2/users/me/events", params, c.iosHeaders())
	if err != nil {
		return nil, err
	}
	return unmarshalItems(raw)
}

// SportStatistics fetches a WatchSportStatistics metric (SPORT_LOAD, VO2_MAX)
// for an inclusive day range.
func (c *Client) SportStatistics(ctx context.Context, metric, startDay, endDay string) ([]json.RawMessage, error) {
	params := url.Values{
		"startDay":  {startDay},
		"endDay":    {endDay},
		"limit":     {"900"},
		"isReverse": {"true"},
	}

	path := "/v2/watch/users/" + c.cfg.UserID + "/WatchSportStatistics/" + metric
	raw, err := c.Fetch(ctx, path, params, c.iosHeaders())
	if err != nil {
		return nil, err
	}
	return unmarshalItems(raw)
}

func unmarshalItems(raw json.RawMessage) ([]json.RawMessage, error) {
	var envelope itemsEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: fmt.Sprintf("unexpected items shape: %v", err)}
	}
	return envelope.Items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
