package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client is the single configured channel to the wallet API. It attaches the
// current bearer token to every call and handles 401 centrally.
type Client struct {
	cfg        Config
	base       *url.URL
	httpClient *http.Client
	source     CredentialSource
	navigator  Navigator
	logger     zerolog.Logger

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

type Option func(*Client)

func WithCredentialSource(source CredentialSource) Option {
	return func(c *Client) {
		c.source = source
	}
}

func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		c.navigator = nav
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the transport. The configured timeout still applies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		c.requestInterceptors = append(c.requestInterceptors, i)
	}
}

func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) {
		c.responseInterceptors = append(c.responseInterceptors, i)
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("[apiclient New] %w", err)
	}

	c := &Client{
		cfg:       cfg,
		base:      base,
		source:    noCredentials{},
		navigator: NavigatorFunc(func(context.Context) {}),
		logger:    log.Logger,
	}
	var extraReq []RequestInterceptor
	var extraResp []ResponseInterceptor
	for _, opt := range opts {
		opt(c)
	}
	extraReq, c.requestInterceptors = c.requestInterceptors, nil
	extraResp, c.responseInterceptors = c.responseInterceptors, nil

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	} else {
		hc := *c.httpClient
		c.httpClient = &hc
	}
	c.httpClient.Timeout = cfg.Timeout
	if cfg.WithCredentials && c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("[apiclient New] cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	c.requestInterceptors = append(c.requestInterceptors, bearerInterceptor(c.source), requestIDInterceptor)
	c.requestInterceptors = append(c.requestInterceptors, extraReq...)
	if cfg.Debug {
		c.requestInterceptors = append(c.requestInterceptors, debugRequestInterceptor(c.logger))
	}
	c.responseInterceptors = append(c.responseInterceptors, unauthorizedInterceptor(c.source, c.navigator, c.logger))
	c.responseInterceptors = append(c.responseInterceptors, extraResp...)

	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// Request describes one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any // JSON encoded unless []byte
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Do runs the request through the interceptor pipeline. Non-2xx replies come
// back as *APIError; transport failures are returned unchanged.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		resp = nil
	}
	for _, intercept := range c.responseInterceptors {
		resp, err = intercept(ctx, resp, err)
	}
	return resp, err
}

func (c *Client) send(ctx context.Context, r Request) (*Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	for _, intercept := range c.requestInterceptors {
		if err := intercept(req); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if c.cfg.Debug {
			c.logger.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("api request failed")
		}
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("[apiclient Do] read body: %w", err)
	}
	if c.cfg.Debug {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status", httpResp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Msg("api response")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, newAPIError(req, httpResp.StatusCode, httpResp.Status, httpResp.Header, body)
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	u, err := c.resolve(r.Path)
	if err != nil {
		return nil, err
	}
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	switch b := r.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("[apiclient newRequest] encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("[apiclient newRequest] %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", c.cfg.ContentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("[apiclient resolve] path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return nil, fmt.Errorf("[apiclient resolve] path %q must be relative to the base url", path)
	}
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return &u, nil
}
