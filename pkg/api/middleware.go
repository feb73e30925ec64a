package api

import "github.com/gin-gonic/gin"

// securityHeaders sets standard security response headers on every
// response. Anna is a single-user localhost daemon that serves only JSON,
// but the ticket endpoint echoes untrusted ticket text back to the caller,
// so the same hardening applies.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}
