// internal/store/cache.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

const contextTTL = 10 * time.Minute

// contextCache keeps the hot per-conversation lookups (last room, last
// department) out of postgres. Every path degrades silently: a cache error is
// a miss, a failed write is ignored.
type contextCache struct {
	client *redis.Client
}

func newContextCache(client *redis.Client) *contextCache {
	return &contextCache{client: client}
}

func roomKey(conversationID string, kind models.RecordKind) string {
	return fmt.Sprintf("concierge:lastroom:%s:%s", kind, conversationID)
}

func departmentKey(conversationID string) string {
	return fmt.Sprintf("concierge:lastdept:%s", conversationID)
}

func (c *contextCache) lastRoom(ctx context.Context, conversationID string, kind models.RecordKind) (string, bool) {
	val, err := c.client.Get(ctx, roomKey(conversationID, kind)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (c *contextCache) setLastRoom(ctx context.Context, conversationID string, kind models.RecordKind, room string) {
	_ = c.client.Set(ctx, roomKey(conversationID, kind), room, contextTTL).Err()
}

func (c *contextCache) lastDepartment(ctx context.Context, conversationID string) (string, bool) {
	val, err := c.client.Get(ctx, departmentKey(conversationID)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (c *contextCache) setLastDepartment(ctx context.Context, conversationID, department string) {
	_ = c.client.Set(ctx, departmentKey(conversationID), department, contextTTL).Err()
}
