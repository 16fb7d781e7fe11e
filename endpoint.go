package paladins

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	// Version of the library, reported in the User-Agent header.
	Version = "1.0.0"

	defaultBaseURL = "https://api.paladins.com/paladinsapi.svc"

	sessionLifetime = 15 * time.Minute

	signatureTimestampLayout = "20060102150405"

	maxRequestAttempts = 5
)

var userAgent = fmt.Sprintf("paladins-go/%s (+github.com/smoketree/paladins-go)", Version)

// methodTimeouts overrides the default per-request timeout for methods known
// to be slow: batch and list endpoints mostly.
var methodTimeouts = map[string]time.Duration{
	"getgods":                   10 * time.Second,
	"getitems":                  10 * time.Second,
	"getchampions":              10 * time.Second,
	"searchplayers":             10 * time.Second,
	"getqueuestats":             10 * time.Second,
	"getbountyitems":            10 * time.Second,
	"getmatchdetails":           10 * time.Second,
	"getmatchhistory":           10 * time.Second,
	"getplayeridbyname":         10 * time.Second,
	"getplayerloadouts":         10 * time.Second,
	"getmatchplayerdetails":     10 * time.Second,
	"getplayeridsbygamertag":    10 * time.Second,
	"getplayeridbyportaluserid": 10 * time.Second,
	"getfriends":                20 * time.Second,
	"getplayerbatch":            20 * time.Second,
	"getmatchidsbyqueue":        20 * time.Second,
	"getmatchdetailsbatch":      20 * time.Second,
	// hopefully long enough for the backend to process the data
	"getchampionskins": 30 * time.Second,
}

const defaultMethodTimeout = 5 * time.Second

func methodTimeout(method string) time.Duration {
	if timeout, ok := methodTimeouts[method]; ok {
		return timeout
	}
	return defaultMethodTimeout
}

// newRetryBackoff returns the delay policy used between request attempts:
// growing intervals with a small jitter.
func newRetryBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.RandomizationFactor = 0.1
	b.Multiplier = 1.5
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Endpoint is the signed-request transport underneath the client: it builds
// per-call MD5 signatures, maintains the 15-minute session token and retries
// transient failures.
type Endpoint struct {
	url     string
	devID   string
	authKey string

	http   *http.Client
	logger *slog.Logger

	// now and newBackoff are swappable in tests.
	now        func() time.Time
	newBackoff func() backoff.BackOff

	sessionMu      sync.Mutex
	sessionKey     string
	sessionExpires time.Time
}

// NewEndpoint wraps the API endpoint at the given base URL with the supplied
// credentials. The main client embeds one of these; standalone construction
// is only useful for raw request access.
func NewEndpoint(url, devID, authKey string) *Endpoint {
	return &Endpoint{
		url:        strings.TrimRight(url, "/"),
		devID:      devID,
		authKey:    strings.ToUpper(authKey),
		http:       &http.Client{},
		logger:     slog.Default(),
		now:        time.Now,
		newBackoff: newRetryBackoff,
	}
}

// Close tears down the underlying connection pool.
func (e *Endpoint) Close() {
	e.http.CloseIdleConnections()
}

func (e *Endpoint) signature(method, timestamp string) string {
	sum := md5.Sum([]byte(e.devID + method + e.authKey + timestamp))
	return hex.EncodeToString(sum[:])
}

func (e *Endpoint) timestamp() string {
	return e.now().UTC().Format(signatureTimestampLayout)
}

// ensureSession makes sure a valid session token exists, creating one when
// the previous one expired. The mutex serializes creation, so concurrent
// expired calls produce a single createsession request. Every signed call
// slides the expiry window forward.
func (e *Endpoint) ensureSession(ctx context.Context) (string, error) {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()
	now := e.now().UTC()
	if !now.Before(e.sessionExpires) {
		raw, err := e.Request(ctx, "createsession")
		if err != nil {
			return "", err
		}
		var session sessionResponse
		if err := json.Unmarshal(raw, &session); err != nil || session.SessionID == "" {
			return "", ErrUnauthorized
		}
		e.sessionKey = session.SessionID
	}
	e.sessionExpires = now.Add(sessionLifetime)
	return e.sessionKey, nil
}

// expireSession forces the next signed request to create a fresh session.
func (e *Endpoint) expireSession() {
	e.sessionMu.Lock()
	e.sessionExpires = e.now().UTC()
	e.sessionMu.Unlock()
}

func (e *Endpoint) buildURL(ctx context.Context, method string, params []any) (string, error) {
	parts := []string{e.url, method + "json"}
	switch {
	case method == "createsession":
		ts := e.timestamp()
		parts = append(parts, e.devID, e.signature(method, ts), ts)
	case method == "testsession" && len(params) == 1 && fmt.Sprint(params[0]) != "":
		ts := e.timestamp()
		parts = append(parts, e.devID, e.signature(method, ts), fmt.Sprint(params[0]), ts)
	case method == "ping":
		// unauthenticated, no extra segments
	default:
		session, err := e.ensureSession(ctx)
		if err != nil {
			return "", err
		}
		ts := e.timestamp()
		parts = append(parts, e.devID, e.signature(method, ts), session, ts)
		for _, param := range params {
			parts = append(parts, fmt.Sprint(param))
		}
	}
	return strings.Join(parts, "/"), nil
}

// retMsg digs the soft-error message out of a response, which may be either
// an object or a list of objects.
func retMsg(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		var obj struct {
			RetMsg string `json:"ret_msg"`
		}
		if json.Unmarshal(trimmed, &obj) == nil {
			return obj.RetMsg
		}
	case '[':
		var list []json.RawMessage
		if json.Unmarshal(trimmed, &list) == nil && len(list) > 0 {
			return retMsg(list[0])
		}
	}
	return ""
}

// Request makes a single API call and returns the raw JSON response. The
// method name should not include the "json" response-type suffix.
//
// Signed methods transparently create and renew the session token.
// Connection problems, timeouts and stale-session soft errors are retried
// up to 5 times in total; retries exhausted surface as *HTTPError. Fatal
// conditions map to ErrUnauthorized, ErrUnavailable and ErrLimitReached.
func (e *Endpoint) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	method = strings.ToLower(method)
	delay := e.newBackoff()
	var lastErr error

	for attempt := 0; attempt < maxRequestAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay.NextBackOff()):
			case <-ctx.Done():
				return nil, newHTTPError(0, ctx.Err())
			}
		}

		reqURL, err := e.buildURL(ctx, method, params)
		if err != nil {
			// session creation failures are already classified
			return nil, err
		}
		requestID := uuid.NewString()
		e.logger.Debug("api request",
			"method", method, "url", reqURL, "attempt", attempt+1, "request_id", requestID)

		raw, err := e.doRequest(ctx, method, reqURL)
		if err != nil {
			if isRetryable(err) && ctx.Err() == nil {
				lastErr = err
				e.logger.Warn("connection problems, retrying",
					"method", method, "request_id", requestID, "error", err)
				continue
			}
			var httpErr *HTTPError
			if errors.As(err, &httpErr) || errors.Is(err, ErrUnavailable) {
				return nil, err
			}
			return nil, newHTTPError(0, err)
		}

		switch retMsg(raw) {
		case "Invalid session id.":
			e.logger.Warn("session expired upstream, recreating",
				"method", method, "request_id", requestID)
			// ensureSession holds the session mutex while creating; expiring
			// from inside that call would deadlock
			if method != "createsession" {
				e.expireSession()
			}
			lastErr = errInvalidSession
			continue
		case "Daily request limit reached":
			e.logger.Error("daily request limit reached")
			return nil, ErrLimitReached
		}
		return raw, nil
	}
	e.logger.Error("ran out of request retries", "method", method, "error", lastErr)
	return nil, newHTTPError(0, lastErr)
}

// doRequest performs one HTTP round trip with the method's timeout applied.
func (e *Endpoint) doRequest(ctx context.Context, method, reqURL string) (json.RawMessage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, methodTimeout(method))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, ErrUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// truncated and garbage bodies show up around deploys; worth a retry
	if !json.Valid(body) {
		return nil, fmt.Errorf("malformed response body")
	}
	return json.RawMessage(body), nil
}

// isRetryable classifies transport-level failures worth another attempt:
// connection errors, timeouts and body read errors. Protocol-level errors
// (bad status, soft errors) are handled by the caller.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrLimitReached):
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return false
	}
	return true
}
