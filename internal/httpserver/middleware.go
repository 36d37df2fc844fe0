package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"jugadubazar/internal/domain"
	cartsvc "jugadubazar/internal/service/cart"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ctxKey string

const cartCtxKey ctxKey = "cart"

type cartGetter interface {
	Get(ctx context.Context, cartID string) (*cartsvc.View, error)
}

// cartMiddleware resolves :cartId and stores the cart view on the request context.
func cartMiddleware(carts cartGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("cartId"))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "cart id required"})
			return
		}
		view, err := carts.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), cartCtxKey, view)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func cartFromContext(ctx context.Context) (*cartsvc.View, bool) {
	v, ok := ctx.Value(cartCtxKey).(*cartsvc.View)
	return v, ok && v != nil
}

// requestLogger emits one access log line per request and feeds the HTTP metrics.
func requestLogger(logger zerolog.Logger, observer httpObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		if observer != nil {
			observer.Observe(c.Request.Method, c.FullPath(), status, elapsed)
		}

		evt := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			evt = logger.Error()
		case status >= http.StatusBadRequest:
			evt = logger.Warn()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http request")
	}
}
