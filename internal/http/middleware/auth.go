package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// Authenticator resolves credentials into a context carrying request data.
type Authenticator interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	SetContextFromBasic(ctx context.Context, email, password string) (context.Context, error)
}

type AuthMiddleware struct {
	log  *logger.Logger
	auth Authenticator
}

func NewAuthMiddleware(log *logger.Logger, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), auth: auth}
}

// RequireAuth accepts a bearer token or HTTP basic credentials, the latter
// for pipeline uploaders that cannot log in first.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var err error
		if token := bearerToken(c); token != "" {
			ctx, err = am.auth.SetContextFromToken(ctx, token)
		} else if email, password, ok := c.Request.BasicAuth(); ok {
			ctx, err = am.auth.SetContextFromBasic(ctx, email, password)
		} else {
			c.Header("WWW-Authenticate", `Basic realm="seqmeta"`)
			abort(c, http.StatusUnauthorized, "unauthorized", "missing credentials")
			return
		}
		if err != nil {
			am.log.Debug("Authentication rejected", "path", c.FullPath(), "error", err)
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			abort(c, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin runs after RequireAuth and lets only admin accounts through.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || !rd.IsAdmin {
			abort(c, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, response.ErrorEnvelope{
		Error: response.APIError{Message: msg, Code: code},
	})
}
