package context

import (
	"context"

	"github.com/muhammadheryan/sample-api/constant"
	"github.com/muhammadheryan/sample-api/model"
)

func GetIdentity(ctx context.Context) (*model.Identity, bool) {
	v := ctx.Value(constant.IdentityKey)
	if v == nil {
		return nil, false
	}
	id, ok := v.(*model.Identity)
	return id, ok
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constant.IdentityKey, identity)
}

func GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(constant.TraceIDKey).(string)
	return v
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, constant.TraceIDKey, traceID)
}
