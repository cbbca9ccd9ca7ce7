package middleware

import (
	"context"
	"net"
	"net/http"
	"shop/shared"
	"shop/shared/constant"
	"shop/shared/timezone"
	"shop/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client IP and user agent in fixed windows.
// A cache failure never blocks a request.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable || limiter.WindowSeconds <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			maxReqs := limiter.MaxRequests
			windowSecs := limiter.WindowSeconds

			cacheKey := a.windowKey(r, windowSecs)

			count, ok := a.increment(r.Context(), cacheKey, windowSecs)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// windowKey identifies the client and the window the request falls into.
func (a *appMiddleware) windowKey(r *http.Request, windowSecs int) string {
	window := timezone.Now().Unix() / int64(windowSecs)

	return shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r), strconv.FormatInt(window, 10))
}

func (a *appMiddleware) increment(ctx context.Context, cacheKey string, windowSecs int) (int, bool) {
	count, err := a.cache.Increment(ctx, cacheKey, windowSecs)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("rate limiter cache unavailable")

		return 0, false
	}

	return int(count), true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For may list several hops, the first is the client
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
