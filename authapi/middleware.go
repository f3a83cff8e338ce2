package authapi

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/authctx"
	"github.com/kbukum/authgate/auth/cookie"
)

// PayloadMiddleware reads the session cookie, verifies it and stores the
// resulting auth.Payload in the request context. It never aborts.
func PayloadMiddleware(svc *auth.Service, cookies *cookie.Transport) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		value, present := cookies.Read(c.Request)
		p := svc.ExtractPayload(ctx, value, present)
		c.Request = c.Request.WithContext(authctx.Set(ctx, p))
		c.Next()
	}
}
