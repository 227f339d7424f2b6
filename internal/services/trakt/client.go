package trakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/traktmanager/internal/config"
	"github.com/amaumene/traktmanager/internal/metrics"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const apiVersion = "2"

// Client handles communication with Trakt API
type Client struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	tokenStore   TokenStore
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *cache.Cache
	mapper       *Mapper
	logger       *logrus.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	now          func() time.Time
}

// NewClient creates a new Trakt API client
func NewClient(cfg *config.Config, tokenStore TokenStore, logger *logrus.Logger, m *metrics.Metrics, tracer trace.Tracer) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.TraktBaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	var responses *cache.Cache
	if cfg.CacheTTL > 0 {
		responses = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return &Client{
		baseURL:      base,
		clientID:     cfg.TraktClientID,
		clientSecret: cfg.TraktClientSecret,
		tokenStore:   tokenStore,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:      limiter,
		cache:        responses,
		mapper:       NewMapper(logger, m),
		logger:       logger,
		metrics:      m,
		tracer:       tracer,
		now:          time.Now,
	}, nil
}

// request describes one API call
type request struct {
	method       string
	path         string
	query        url.Values
	body         interface{}
	requiresAuth bool
	// name is the low cardinality label used in metrics and spans
	name string
}

// response is a fully read API response
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// doRequest sends the request and maps non-success statuses to errors
func (c *Client) doRequest(ctx context.Context, req request) (*response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// send performs the HTTP round trip and returns the response whatever its status
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	token, hasToken := c.tokenStore.GetToken()
	if req.requiresAuth && (!hasToken || token.AccessToken == "") {
		return nil, ErrTokenRequired
	}

	fullURL := c.resolve(req.path, req.query)
	cacheable := c.cache != nil && req.method == http.MethodGet && !hasToken
	if cacheable {
		if cached, ok := c.cache.Get(fullURL); ok {
			c.logger.WithField("url", fullURL).Debug("Serving Trakt API response from cache")
			return cached.(*response), nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	ctx, span := c.tracer.Start(ctx, req.method+" "+req.name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("trakt.endpoint", req.name),
		attribute.Bool("trakt.authenticated", hasToken),
	)

	var reqBody io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	c.logger.WithFields(logrus.Fields{
		"method": req.method,
		"url":    fullURL,
	}).Debug("Making Trakt API request")

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("trakt-api-version", apiVersion)
	httpReq.Header.Set("trakt-api-key", c.clientID)
	if hasToken && token.AccessToken != "" {
		httpReq.Header.Set("Authorization", token.AuthorizationHeader())
	}

	start := c.now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(req.name, 0, c.now().Sub(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.metrics.ObserveRequest(req.name, httpResp.StatusCode, c.now().Sub(start))
	span.SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))
	if httpResp.StatusCode >= 400 {
		span.SetStatus(codes.Error, httpResp.Status)
	}

	resp := &response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}
	if cacheable && isSuccess(resp.StatusCode) {
		c.cache.SetDefault(fullURL, resp)
	}
	return resp, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func checkStatus(req request, resp *response) error {
	switch {
	case isSuccess(resp.StatusCode):
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.StatusCode == http.StatusForbidden && req.requiresAuth:
		return ErrForbidden
	default:
		return &HTTPError{
			Method:     req.method,
			Path:       req.path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(resp.Body)),
		}
	}
}

var paginationHeaders = [4]string{
	"X-Pagination-Page",
	"X-Pagination-Limit",
	"X-Pagination-Page-Count",
	"X-Pagination-Item-Count",
}

// parsePagination returns nil unless all four pagination headers are present and valid
func parsePagination(header http.Header) *models.Pagination {
	var values [4]int
	for i, name := range paginationHeaders {
		raw := strings.TrimSpace(header.Get(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		values[i] = v
	}
	p, err := models.NewPagination(values[0], values[1], values[2], values[3])
	if err != nil {
		return nil
	}
	return &p
}
