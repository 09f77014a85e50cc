package middleware

import (
	"net/http"
	"strconv"

	"github.com/SHoar/Wedding-AI/internal/handlers"
	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Options struct {
	// AuthToken enables bearer authentication when non-empty.
	AuthToken string
	RateLimit bool
}

// Chain is the per-request pipeline every API route is wrapped in: trace, auth, rate limit, metrics.
type Chain struct {
	authToken string
	limiter   *IPRateLimiter
	logger    *logger_i.Logger
}

func NewChain(opts Options) *Chain {
	c := &Chain{
		authToken: opts.AuthToken,
		logger:    logger_i.NewLogger("middleware"),
	}
	if opts.RateLimit {
		c.limiter = NewDefaultIPRateLimiter()
	}
	return c
}

func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, true)
}

// WrapPublic skips auth and rate limiting, for probes.
func (c *Chain) WrapPublic(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, false)
}

func (c *Chain) wrap(next http.HandlerFunc, guarded bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := metrics.NewStatusRecorder(w)
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
		}()

		re := c.processRequest(requestResponseStruct{req: r, writer: rec, logger: c.logger}, guarded)
		if !handleBadRequest(re) {
			return
		}
		next(rec, re.req)
	}
}

// Handler adapts Wrap for routes mounted as http.Handler, such as the MCP endpoint.
func (c *Chain) Handler(next http.Handler) http.Handler {
	return c.Wrap(next.ServeHTTP)
}

func (c *Chain) processRequest(re requestResponseStruct, guarded bool) requestResponseStruct {
	re = injectTrace(re)
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	if !guarded {
		return re
	}

	if c.authToken != "" {
		re = authenticate(re, c.authToken)
		if re.badRequest.isBadRequest {
			return re
		}
	}
	if c.limiter != nil {
		re = rateLimiter(re, c.limiter)
	}
	return re
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
		return false
	}
	return true
}
