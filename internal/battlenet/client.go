// Package battlenet is the authenticated handle to the Battle.net REST
// API: OAuth2 client-credentials tokens, the request gateway with its
// status policy, and one narrow fetcher per remote resource.
package battlenet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/logger"
	"codeberg.org/mutker/armoryd/internal/observability"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultThrottleDelay = 60 * time.Second

	// Tokens are refreshed this long before the server-reported expiry
	tokenExpiryMargin = 60 * time.Second
)

// Client owns the HTTP connection pool and the cached access token.
// One client is created per process and shared by the collector; all
// calls happen from the poll loop goroutine, so the token cache needs
// no locking.
type Client struct {
	httpc         *http.Client
	region        Region
	clientID      string
	clientSecret  string
	locale        string
	throttleDelay time.Duration
	apiURL        string
	tokenURL      string
	log           logger.Logger

	token       string
	tokenExpiry time.Time
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP timeout for all requests
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithThrottleDelay sets the cooldown before the single retry after a
// rate-limited response
func WithThrottleDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.throttleDelay = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLocale overrides the region's default locale parameter
func WithLocale(locale string) ClientOption {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithBaseURLs overrides the API and token endpoints, for tests
func WithBaseURLs(apiURL, tokenURL string) ClientOption {
	return func(c *Client) {
		c.apiURL = apiURL
		c.tokenURL = tokenURL
	}
}

// NewClient creates a client for one region and credential pair
func NewClient(region Region, clientID, clientSecret string, opts ...ClientOption) (*Client, error) {
	errFactory := errors.New()

	if !region.Valid() {
		return nil, errFactory.WithData(ErrInvalidRegion, struct {
			Region string
		}{string(region)})
	}
	if clientID == "" || clientSecret == "" {
		return nil, errFactory.New(ErrMissingCredentials)
	}

	c := &Client{
		httpc:         &http.Client{Timeout: defaultTimeout},
		region:        region,
		clientID:      clientID,
		clientSecret:  clientSecret,
		locale:        region.Locale(),
		throttleDelay: defaultThrottleDelay,
		apiURL:        region.APIURL(),
		tokenURL:      region.TokenURL(),
		log:           logger.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Region returns the region the client was created for
func (c *Client) Region() Region {
	return c.region
}

// Close releases pooled connections and discards the cached token
func (c *Client) Close() {
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.httpc.CloseIdleConnections()
}

// accessToken returns the cached token, exchanging credentials when
// the cache is empty or inside the expiry margin. A failed exchange
// leaves the cache untouched.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	errFactory := errors.New()

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errFactory.Wrap(ErrAuthFailure, err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", errFactory.Wrap(ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errFactory.WithData(ErrAuthFailure, struct {
			Status int
		}{resp.StatusCode})
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errFactory.Wrap(ErrAuthFailure, err)
	}
	if payload.AccessToken == "" {
		return "", errFactory.WithMessage(ErrAuthFailure, "token response carries no access_token")
	}

	c.token = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - tokenExpiryMargin)
	c.log.Debug().Time("expiry", c.tokenExpiry).Msg("Access token refreshed")

	return c.token, nil
}

// lookup performs one authenticated GET against the API. The status
// policy is total: 200 decodes, 404 is the empty document with no
// error, 429 waits one cooldown and retries once, anything else is a
// request error alongside the empty document. Callers that must
// distinguish an absent resource from a failed transport branch here;
// everything extractor-facing goes through fetch instead.
func (c *Client) lookup(ctx context.Context, path string, ns Namespace) (Document, error) {
	return c.lookupRetry(ctx, path, ns, true)
}

func (c *Client) lookupRetry(ctx context.Context, path string, ns Namespace, retry bool) (Document, error) {
	errFactory := errors.New()

	token, err := c.accessToken(ctx)
	if err != nil {
		return Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return Document{}, errFactory.Wrap(ErrRequestFailed, err)
	}
	q := req.URL.Query()
	q.Set("namespace", ns.For(c.region))
	q.Set("locale", c.locale)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	observability.RecordRequest(statusOf(resp), time.Since(start))
	if err != nil {
		return Document{}, errFactory.Wrap(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var doc Document
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return Document{}, errFactory.Wrap(ErrDecodeFailed, err)
		}
		return doc, nil

	case resp.StatusCode == http.StatusNotFound:
		return Document{}, nil

	case resp.StatusCode == http.StatusTooManyRequests && retry:
		c.log.Warn().
			Str("path", path).
			Dur("cooldown", c.throttleDelay).
			Msg("Rate limited, waiting before retry")
		observability.RecordRetry()
		select {
		case <-ctx.Done():
			return Document{}, errFactory.Wrap(ErrRequestFailed, ctx.Err())
		case <-time.After(c.throttleDelay):
		}
		return c.lookupRetry(ctx, path, ns, false)

	case resp.StatusCode == http.StatusTooManyRequests:
		return Document{}, errFactory.WithData(ErrThrottled, struct {
			Path string
		}{path})

	default:
		return Document{}, errFactory.WithData(ErrRequestFailed, struct {
			Path   string
			Status int
		}{path, resp.StatusCode})
	}
}

// fetch collapses request errors into the empty document so fetcher
// callers never branch on transport failures. Auth failures and
// context cancellation stay errors: they abort the whole cycle rather
// than zeroing every remaining metric.
func (c *Client) fetch(ctx context.Context, path string, ns Namespace) (Document, error) {
	doc, err := c.lookup(ctx, path, ns)
	if err == nil {
		return doc, nil
	}

	if errors.HasCode(err, ErrAuthFailure) || ctx.Err() != nil {
		return Document{}, err
	}

	c.log.Warn().
		Str("path", path).
		Err(err).
		Msg("Request degraded to empty document")

	return Document{}, nil
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}

	return resp.StatusCode
}
