package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix           = "user:%d"
	NetworkSummaryKeyPrefix = "network:summary:%d"
)

const (
	UserTTL           = 5 * time.Minute
	NetworkSummaryTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func NetworkSummaryKey(userID uint) string {
	return fmt.Sprintf(NetworkSummaryKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateNetworkSummary drops the cached summary counts for a user.
// Called after any mutation touching that user's edges.
func InvalidateNetworkSummary(ctx context.Context, userID uint) {
	Invalidate(ctx, NetworkSummaryKey(userID))
}
