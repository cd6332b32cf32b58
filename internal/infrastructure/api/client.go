// Package api is the typed client of the portfolio REST backend. Every
// operation returns a Result and honours context cancellation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
)

// CallObserver receives one observation per backend call
type CallObserver interface {
	ObserveCall(op, method string, status int, kind string, duration time.Duration)
}

type tokenKey struct{}

// WithToken returns a context whose authenticated calls use token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token stored by WithToken, or ""
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the REST backend
type Client struct {
	http       *resty.Client
	endpoints  config.Endpoints
	backendURL string
	logger     *zap.Logger
	observer   CallObserver
	tracer     trace.Tracer
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithObserver sets the metrics observer
func WithObserver(o CallObserver) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a client for the backend described by site
func NewClient(apiCfg config.APIConfig, site config.SiteConfig, opts ...Option) (*Client, error) {
	if site.APIBaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}

	rc := resty.New().
		SetTimeout(apiCfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "portfolio-web/1.0").
		SetRetryCount(apiCfg.RetryCount).
		SetRetryWaitTime(apiCfg.RetryWaitTime).
		SetRetryMaxWaitTime(apiCfg.RetryMaxWaitTime).
		AddRetryCondition(retryIdempotent)

	c := &Client{
		http:       rc,
		endpoints:  config.NewEndpoints(site.APIBaseURL),
		backendURL: strings.TrimRight(site.BackendURL, "/"),
		logger:     zap.NewNop(),
		tracer:     otel.Tracer("portfolio-web/api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoints returns the endpoint map the client uses
func (c *Client) Endpoints() config.Endpoints {
	return c.endpoints
}

// retryIdempotent retries reads on transport errors, 5xx and 429
func retryIdempotent(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return r.StatusCode() >= http.StatusInternalServerError || r.StatusCode() == http.StatusTooManyRequests
}

// filePart is a multipart file attached to a call
type filePart struct {
	field       string
	filename    string
	contentType string
	reader      io.Reader
}

// call describes one backend request
type call struct {
	op      string // metric and span name, e.g. "projects.getById"
	method  string
	url     string
	body    any
	auth    bool
	file    *filePart
	failMsg string
}

// execute performs the call and returns the unwrapped payload
func (c *Client) execute(ctx context.Context, cl call) (gjson.Result, *Error) {
	ctx, span := c.tracer.Start(ctx, cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.full", cl.url),
		),
	)
	defer span.End()

	log := c.log(ctx).With(zap.String("op", cl.op), zap.String("method", cl.method), zap.String("url", cl.url))

	req := c.http.R().SetContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	if cl.auth {
		// Sent even when empty; the backend rejects missing tokens.
		req.SetHeader("Authorization", "Bearer "+TokenFrom(ctx))
	}
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}
	if cl.file != nil {
		req.SetMultipartField(cl.file.field, cl.file.filename, cl.file.contentType, cl.file.reader)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.url)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}

	var payload gjson.Result
	var apiErr *Error
	if err != nil {
		apiErr = transportError(err, cl.failMsg)
	} else {
		payload, apiErr = interpret(status, resp.Body(), cl)
	}

	kind := "ok"
	if apiErr != nil {
		kind = apiErr.Kind.String()
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Message)
		log.Warn("Backend call failed",
			zap.Int("status", status),
			zap.String("kind", kind),
			zap.String("message", apiErr.Message),
			zap.Duration("duration", elapsed),
			zap.Error(apiErr.Err),
		)
	} else {
		span.SetStatus(codes.Ok, "")
		log.Debug("Backend call", zap.Int("status", status), zap.Duration("duration", elapsed))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if c.observer != nil {
		c.observer.ObserveCall(cl.op, cl.method, status, kind, elapsed)
	}
	return payload, apiErr
}

func (c *Client) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, c.logger)
}

func transportError(err error, failMsg string) *Error {
	msg := failMsg
	switch {
	case errors.Is(err, context.Canceled):
		msg = "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		msg = "The server took too long to respond"
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// interpret maps a completed HTTP exchange onto a payload or an Error.
// Payloads wrapped as {"success":..,"data":..} are unwrapped.
func interpret(status int, body []byte, cl call) (gjson.Result, *Error) {
	doc := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) {
		doc = gjson.Result{}
	}

	if status < 200 || status > 299 {
		if cl.auth && (status == http.StatusUnauthorized || status == http.StatusForbidden) {
			return gjson.Result{}, &Error{Kind: KindUnauthorized, Status: status, Message: AccessDeniedMessage}
		}
		if msg := errorMessage(doc); msg != "" {
			return gjson.Result{}, &Error{Kind: KindHTTP, Status: status, Message: msg}
		}
		return gjson.Result{}, &Error{Kind: KindHTTPNoBody, Status: status, Message: cl.failMsg}
	}

	if doc.IsObject() {
		success, data := doc.Get("success"), doc.Get("data")
		if success.Exists() && data.Exists() {
			if !success.Bool() {
				msg := errorMessage(doc)
				if msg == "" {
					msg = cl.failMsg
				}
				return gjson.Result{}, &Error{Kind: KindHTTP, Status: status, Message: msg}
			}
			return data, nil
		}
	}
	return doc, nil
}

// errorMessage extracts the backend's error text
func errorMessage(doc gjson.Result) string {
	if !doc.IsObject() {
		return ""
	}
	for _, field := range []string{"message", "error", "msg", "error.message"} {
		if v := doc.Get(field); v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return v.String()
		}
	}
	return ""
}

// do executes cl and decodes the payload into T
func do[T any](ctx context.Context, c *Client, cl call) Result[T] {
	payload, apiErr := c.execute(ctx, cl)
	if apiErr != nil {
		return Fail[T](apiErr)
	}

	var out T
	if !payload.Exists() || payload.Type == gjson.Null {
		return Ok(out)
	}
	if err := json.Unmarshal([]byte(payload.Raw), &out); err != nil {
		c.log(ctx).Warn("Undecodable backend payload", zap.String("op", cl.op), zap.Error(err))
		return Fail[T](&Error{Kind: KindDecode, Message: cl.failMsg, Err: err})
	}
	return Ok(out)
}
