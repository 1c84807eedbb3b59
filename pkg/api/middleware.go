package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/rs/zerolog/log"
)

func isProbe(path string) bool {
	return path == "/liveness" || path == "/readiness"
}

// ZeroLogMiddleware logs gin requests via zerolog
func ZeroLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		if isProbe(path) {
			// don't log these requests, only execute them
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		event := log.Debug()
		if statusCode >= 500 {
			event = log.Warn()
		}

		event.
			Int("statusCode", statusCode).
			Dur("latencyMs", latency).
			Str("clientIP", c.ClientIP()).
			Str("path", path).
			Msgf("[GIN] %3d %13v %15s %-7s %s", statusCode, latency, c.ClientIP(), c.Request.Method, path)
	}
}

// OpenTracingMiddleware creates a span for each request
func OpenTracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		if isProbe(c.Request.URL.Path) {
			c.Next()
			return
		}

		// retrieve span context from upstream caller if available
		tracingCtx, _ := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))

		span := opentracing.StartSpan(fmt.Sprintf("%v:%v", c.Request.Method, c.FullPath()), ext.RPCServerOption(tracingCtx))
		defer span.Finish()

		ext.SpanKindRPCServer.Set(span)
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.String())

		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}
