package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

const (
	AuthMethodToken = "token"
	AuthMethodBasic = "basic"
)

// RequestData identifies the authenticated caller of a request.
type RequestData struct {
	UserID     uuid.UUID
	Email      string
	IsAdmin    bool
	AuthMethod string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
