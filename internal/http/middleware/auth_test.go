package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

type fakeAuth struct {
	userID uuid.UUID
}

func (f fakeAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if token != "good" {
		return ctx, errors.New("invalid or expired token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: f.userID, AuthMethod: ctxutil.AuthMethodToken}), nil
}

func (f fakeAuth) SetContextFromBasic(ctx context.Context, email, password string) (context.Context, error) {
	if email != "lab@example.org" || password != "pw" {
		return ctx, errors.New("invalid email or password")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: f.userID, AuthMethod: ctxutil.AuthMethodBasic}), nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	r := gin.New()
	r.Use(NewAuthMiddleware(logger.Nop(), fakeAuth{userID: userID}).RequireAuth())
	r.GET("/api/whoami", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.AuthMethod+":"+rd.UserID.String())
	})

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{name: "missing", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, status: http.StatusOK, body: "token:" + userID.String()},
		{name: "bad_bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer bad") }, status: http.StatusUnauthorized},
		{name: "basic", setup: func(r *http.Request) { r.SetBasicAuth("lab@example.org", "pw") }, status: http.StatusOK, body: "basic:" + userID.String()},
		{name: "bad_basic", setup: func(r *http.Request) { r.SetBasicAuth("lab@example.org", "nope") }, status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body=%q want %q", rec.Body.String(), tc.body)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		rd     *ctxutil.RequestData
		status int
	}{
		{name: "anonymous", status: http.StatusForbidden},
		{name: "member", rd: &ctxutil.RequestData{UserID: uuid.New()}, status: http.StatusForbidden},
		{name: "admin", rd: &ctxutil.RequestData{UserID: uuid.New(), IsAdmin: true}, status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tc.rd != nil {
					c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), tc.rd))
				}
				c.Next()
			})
			r.DELETE("/api/samples/:id", NewAuthMiddleware(logger.Nop(), fakeAuth{}).RequireAdmin(), func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/samples/S1", nil))
			if rec.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}
