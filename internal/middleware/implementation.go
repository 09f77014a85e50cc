package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/google/uuid"
)

// injectTrace reuses the caller's X-Trace-Id or mints one, and echoes it on the response.
func injectTrace(re requestResponseStruct) requestResponseStruct {
	trace := re.req.Header.Get(config.TRACE_ID_HEADER)
	if trace == "" {
		trace = uuid.New().String()
	}
	re.logger = re.logger.With("traceId", trace)
	re.writer.Header().Set(config.TRACE_ID_HEADER, trace)
	re.req = re.req.WithContext(config.WithTraceID(re.req.Context(), trace))
	return re
}

func authenticate(re requestResponseStruct, token string) requestResponseStruct {
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), token, re.logger) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func IsValidBearerToken(authHeader string, token string, log *logger_i.Logger) bool {
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(token)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}
	return true
}

func rateLimiter(re requestResponseStruct, limiter *IPRateLimiter) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiter.Allow(ip) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
	}
	return re
}
