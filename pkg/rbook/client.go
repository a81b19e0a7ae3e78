// Package rbook downloads repeater records from RepeaterBook.com using a
// rate-limited, multi-strategy acquisition chain.
package rbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/radiobridge/radiobridge/pkg/band"
	"github.com/radiobridge/radiobridge/pkg/config"
	"github.com/radiobridge/radiobridge/pkg/pacing"
	"github.com/radiobridge/radiobridge/pkg/version"
)

// DefaultBaseURL is the remote source root.
const DefaultBaseURL = "https://www.repeaterbook.com"

const (
	exportPath = "/repeaters/downloads/index.php"
	searchPath = "/repeaters/location_search.php"
)

// stateIDs maps two-letter US state codes to the source's numeric state
// IDs. Unknown codes pass through unchanged so province codes keep working.
var stateIDs = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56",
}

// StateID converts a state code to the source's numeric identifier.
func StateID(code string) string {
	if id, ok := stateIDs[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return id
	}
	return code
}

// Client talks to the remote source for one acquisition session. All
// outbound requests pass through its Pacer; at most one request is in
// flight at any time.
type Client struct {
	baseURL   string
	http      *http.Client
	pacer     *pacing.Pacer
	retry     config.RetryConfig
	sessionID string
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option overrides Client construction defaults.
type Option func(*Client)

// WithBaseURL points the client at an alternate source root. Used by
// tests to target a local fixture server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLogger replaces the default component logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l.With("component", "rbook") }
}

// NewClient creates a session-scoped client. The Pacer is owned by the
// session and starts fresh.
func NewClient(scope *Scope, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: scope.Timeout,
		},
		pacer:     pacing.New(scope.Pacing),
		retry:     scope.Retry,
		sessionID: uuid.NewString(),
		logger:    slog.Default().With("component", "rbook"),
		tracer:    otel.Tracer("radiobridge/rbook"),
	}
	if c.retry.MaxTries == 0 {
		c.retry = config.DefaultRetryConfig()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the session identifier stamped into provenance
// summaries.
func (c *Client) SessionID() string { return c.sessionID }

// get fetches a source document. Transient faults (transport errors,
// 5xx, 429) are retried with exponential backoff up to the configured
// bound; every attempt waits on the Pacer first. Non-transient HTTP
// failures return immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, http.Header, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.getURL(ctx, target)
}

// getURL is the transport core behind get; it takes a fully built URL.
func (c *Client) getURL(ctx context.Context, target string) ([]byte, http.Header, error) {
	type response struct {
		body   []byte
		header http.Header
	}

	operation := func() (response, error) {
		if err := c.pacer.Wait(ctx); err != nil {
			return response{}, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return response{}, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", fmt.Sprintf("%s/%s (Amateur Radio Tool)", version.AppName, version.Current))

		resp, err := c.http.Do(req)
		if err != nil {
			// Transport faults are transient.
			c.logger.Debug("Request failed, will retry", "url", target, "error", err)
			return response{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			serr := &statusError{code: resp.StatusCode}
			if serr.retryable() {
				c.logger.Debug("Transient status, will retry", "url", target, "status", resp.StatusCode)
				return response{}, serr
			}
			return response{}, backoff.Permanent(serr)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{}, err
		}
		return response{body: body, header: resp.Header}, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retry.InitialBackoff

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.retry.MaxTries),
		backoff.WithMaxElapsedTime(c.retry.MaxElapsed),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("GET %s: %w", target, err)
	}
	return resp.body, resp.header, nil
}

// searchQuery builds the structural-search query for a scope.
func searchQuery(scope *Scope) url.Values {
	q := url.Values{}
	q.Set("state_id", StateID(scope.State))
	q.Set("band", band.QueryParam(scope.Bands))
	switch {
	case scope.County != "":
		q.Set("type", "county")
		q.Set("loc", scope.County)
	case scope.City != "":
		q.Set("type", "city")
		q.Set("loc", scope.City)
	default:
		q.Set("type", "state")
	}
	return q
}

// exportQuery builds the bulk-export query for a scope.
func exportQuery(scope *Scope) url.Values {
	q := url.Values{}
	q.Set("state_id", StateID(scope.State))
	q.Set("country", scope.Country)
	q.Set("format", "csv")
	if scope.County != "" {
		q.Set("county", scope.County)
	}
	if scope.City != "" {
		q.Set("city", scope.City)
	}
	return q
}
