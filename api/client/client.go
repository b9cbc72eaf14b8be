package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"sync/atomic"

	"github.com/owenbush/timeular2noko/api"
	"github.com/owenbush/timeular2noko/api/http"
	"github.com/owenbush/timeular2noko/cache"
	"github.com/owenbush/timeular2noko/config"
	"github.com/owenbush/timeular2noko/internal"
	"github.com/owenbush/timeular2noko/session"
	"go.uber.org/zap"
)

const (
	ErrEmptyResponse = "empty response"
	errDecode        = "failed to decode response: %w"
	errEncode        = "failed to encode payload: %w"
)

// Client talks to the Timeular API on behalf of a single account. It owns
// the session token and an endpoint-keyed cache of successful GET responses.
type Client struct {
	Config    config.Config
	caller    http.Caller
	cache     *cache.Cache
	session   *session.Session
	onFailure FailureHandler
	debug     atomic.Bool
}

func New(callerFactory http.CallerFactory, store cache.Store, cfg config.Config) *Client {
	c := &Client{
		Config:    cfg,
		caller:    callerFactory(cfg),
		cache:     cache.New(store),
		session:   session.New(),
		onFailure: Propagate,
	}
	c.debug.Store(cfg.Debug)

	return c
}

func (c *Client) WithServiceURL(url string) *Client {
	c.Config.URL = url
	return c
}

// WithFailureHandler replaces the default Propagate handler.
func (c *Client) WithFailureHandler(handler FailureHandler) *Client {
	if handler == nil {
		handler = Propagate
	}
	c.onFailure = handler
	return c
}

// Debug toggles diagnostic logging of requests, responses and cache lookups.
// It has no other effect.
func (c *Client) Debug(enabled bool) {
	c.debug.Store(enabled)
}

// Token returns the bearer token, or "" before a successful Connect.
func (c *Client) Token() string {
	return c.session.Token()
}

// Request calls endpoint (relative to the configured URL) and returns the
// JSON document of the response. An empty method means GET. Successful GET
// responses are cached under the literal endpoint and served from the cache
// on every later GET of the same endpoint; other methods bypass the cache.
//
// Only 200 and 201 count as success. Failures are *RequestError values for
// transport and status problems, and go through the failure handler.
func (c *Client) Request(ctx context.Context, endpoint, method string, payload any) (json.RawMessage, error) {
	result, err := c.do(ctx, endpoint, method, payload)
	if err != nil {
		return nil, c.fail(err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, endpoint, method string, payload any) (json.RawMessage, error) {
	if method == "" {
		method = stdhttp.MethodGet
	}
	cacheable := method == stdhttp.MethodGet

	if cacheable {
		cached, ok, err := c.cache.Get(endpoint)
		if err != nil {
			zap.S().Warnf("cache lookup for %s failed: %s", endpoint, err)
		}
		if ok {
			if c.debug.Load() {
				zap.S().Debugf("cache hit: %s", endpoint)
			}
			return cached, nil
		}
	}

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf(errEncode, err)
		}
		body = encoded
	}

	url := c.getEndpoint(endpoint)
	headers := c.headers()

	id := internal.NewCorrelationID()
	if c.debug.Load() {
		c.printRequestDebugInfo(id, method, url, body, headers)
	}

	resp, err := c.caller.Do(ctx, method, url, body, headers)
	if err != nil {
		return nil, &RequestError{
			Kind:     TransportError,
			Endpoint: endpoint,
			Method:   method,
			Message:  err.Error(),
			Err:      err,
		}
	}

	if c.debug.Load() {
		c.printResponseDebugInfo(id, resp)
	}

	if resp.StatusCode != stdhttp.StatusOK && resp.StatusCode != stdhttp.StatusCreated {
		return nil, &RequestError{
			Kind:       StatusError,
			Endpoint:   endpoint,
			Method:     method,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Detail:     errorDetail(resp.Body),
		}
	}

	if len(resp.Body) == 0 {
		return nil, errors.New(ErrEmptyResponse)
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf(errDecode, fmt.Errorf("invalid JSON from %s %s", method, endpoint))
	}

	result := json.RawMessage(resp.Body)
	if cacheable {
		if err := c.cache.Set(endpoint, result); err != nil {
			zap.S().Warnf("caching %s failed: %s", endpoint, err)
		}
	}

	return result, nil
}

func (c *Client) headers() map[string]string {
	headers := map[string]string{
		internal.HeaderUserAgentKey:   c.Config.UserAgent,
		internal.HeaderContentTypeKey: internal.HeaderContentTypeValue,
	}

	if token := c.session.Token(); token != "" {
		headers[c.Config.AuthHeader] = c.Config.AuthTokenPrefix + token
	}

	return headers
}

func (c *Client) fail(err error) error {
	if handled := c.onFailure(err); handled != nil {
		return handled
	}
	return err
}

func (c *Client) getEndpoint(path string) string {
	return c.Config.URL + path
}

func (c *Client) processResponse(raw []byte, v interface{}) error {
	if raw == nil {
		return errors.New(ErrEmptyResponse)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf(errDecode, err)
	}

	return nil
}

func errorDetail(body []byte) string {
	var errorData api.ErrorResponse
	if err := json.Unmarshal(body, &errorData); err != nil {
		return ""
	}
	return errorData.Message
}
