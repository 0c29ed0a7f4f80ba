package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/userbook/internal/logging"
	"github.com/gin-gonic/gin"
)

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

// NewRouter wires middleware and routes. limiter and health may be nil.
func NewRouter(h *Handler, logger logging.Logger, limiter *RateLimiter, health HealthFunc) *gin.Engine {
	r := gin.New()
	// the peer address is the client until proxies are trusted explicitly
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/")
	if limiter != nil {
		api.Use(limiter.Handler())
	}
	for _, p := range []string{"/operations", "/api/operations"} {
		api.GET(p, h.Operations)
		api.POST(p, h.Operations)
	}

	return r
}

// TrustProxies lets requests arriving from proxies (IPs or CIDRs) name the
// client through X-Forwarded-For. Empty trusts nobody.
func TrustProxies(r *gin.Engine, proxies []string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	return nil
}
