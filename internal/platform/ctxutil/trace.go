package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type traceDataKey struct{}

// HeaderRequestID carries the request id to clients and to the LIMS.
const HeaderRequestID = "X-Request-Id"

// TraceData correlates one API request across logs, spans and LIMS calls.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the correlation ids and caller stored on ctx as logger
// key/value pairs, followed by kv.
func LogFields(ctx context.Context, kv ...interface{}) []interface{} {
	out := make([]interface{}, 0, len(kv)+6)
	if td := GetTraceData(ctx); td != nil {
		if td.TraceID != "" {
			out = append(out, "trace_id", td.TraceID)
		}
		if td.RequestID != "" {
			out = append(out, "request_id", td.RequestID)
		}
	}
	if rd := GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		out = append(out, "user_id", rd.UserID.String())
	}
	return append(out, kv...)
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
