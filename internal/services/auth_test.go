package services

import (
	"errors"
	"testing"
	"time"

	types "github.com/yungbote/seqmeta-backend/internal/domain"
	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
)

func TestAuthServiceFlow(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.auth.CreateUser(env.ctx, &types.User{Email: " Lab@Example.org ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Email != "lab@example.org" || u.Password == "correct horse" {
		t.Fatalf("CreateUser did not normalise/hash: %+v", u)
	}
	if _, err := env.auth.CreateUser(env.ctx, &types.User{Email: "lab@example.org", Password: "another one"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate: want ErrUserExists, got %v", err)
	}

	res, err := env.auth.Login(env.ctx, "LAB@example.org", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.TokenType != "Bearer" || res.AccessToken == "" {
		t.Fatalf("Login result: %+v", res)
	}

	ctx, err := env.auth.SetContextFromToken(env.ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID != u.ID || rd.AuthMethod != ctxutil.AuthMethodToken {
		t.Fatalf("request data: %+v", rd)
	}

	ctx, err = env.auth.SetContextFromBasic(env.ctx, "lab@example.org", "correct horse")
	if err != nil {
		t.Fatalf("SetContextFromBasic: %v", err)
	}
	if rd := ctxutil.GetRequestData(ctx); rd == nil || rd.AuthMethod != ctxutil.AuthMethodBasic {
		t.Fatalf("basic request data: %+v", rd)
	}

	if _, err := env.auth.Login(env.ctx, "lab@example.org", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.auth.SetContextFromBasic(env.ctx, "nobody@example.org", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthServiceCarriesAdminFlag(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.auth.CreateUser(env.ctx, &types.User{Email: "admin@example.org", Password: "correct horse", IsAdmin: true}); err != nil {
		t.Fatalf("CreateUser admin: %v", err)
	}
	if _, err := env.auth.CreateUser(env.ctx, &types.User{Email: "member@example.org", Password: "correct horse"}); err != nil {
		t.Fatalf("CreateUser member: %v", err)
	}

	cases := []struct {
		email string
		admin bool
	}{
		{email: "admin@example.org", admin: true},
		{email: "member@example.org", admin: false},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			res, err := env.auth.Login(env.ctx, tc.email, "correct horse")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			ctx, err := env.auth.SetContextFromToken(env.ctx, res.AccessToken)
			if err != nil {
				t.Fatalf("SetContextFromToken: %v", err)
			}
			if rd := ctxutil.GetRequestData(ctx); rd.IsAdmin != tc.admin {
				t.Fatalf("token IsAdmin=%v want %v", rd.IsAdmin, tc.admin)
			}
			ctx, err = env.auth.SetContextFromBasic(env.ctx, tc.email, "correct horse")
			if err != nil {
				t.Fatalf("SetContextFromBasic: %v", err)
			}
			if rd := ctxutil.GetRequestData(ctx); rd.IsAdmin != tc.admin {
				t.Fatalf("basic IsAdmin=%v want %v", rd.IsAdmin, tc.admin)
			}
		})
	}
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.auth.CreateUser(env.ctx, &types.User{Email: "a@example.org", Password: "password1"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	svc := env.auth.(*authService)
	expired, err := svc.generateAccessToken(u, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	other := NewAuthService(env.tx, svc.log, svc.userRepo, "other-secret", time.Hour).(*authService)
	foreign, err := other.generateAccessToken(u, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	for name, tok := range map[string]string{
		"expired": expired,
		"foreign": foreign,
		"garbage": "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := env.auth.SetContextFromToken(env.ctx, tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	for name, u := range map[string]*types.User{
		"bad_email":      {Email: "not-an-email", Password: "password1"},
		"short_password": {Email: "ok@example.org", Password: "short"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := env.auth.CreateUser(env.ctx, u); !errors.Is(err, ErrInvalidUser) {
				t.Fatalf("want ErrInvalidUser, got %v", err)
			}
		})
	}
}
