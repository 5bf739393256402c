package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

// UserID is a convenience accessor; returns uuid.Nil when no identity is bound.
func UserID(ctx context.Context) uuid.UUID {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.UserID
	}
	return uuid.Nil
}
