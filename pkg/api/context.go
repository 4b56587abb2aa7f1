package api

import "context"

type contextKey string

const contextKeyRequestID contextKey = "requestID"

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}
