package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCacheManager keeps recently fetched comment/reply pages across page
// views. It is an optimization only: every cache failure degrades to a
// network fetch, and entries expire on their own rather than being
// invalidated on write.
type PageCacheManager struct {
	client     *redis.Client
	pageExpire time.Duration
}

func NewPageCacheManager(client *redis.Client) *PageCacheManager {
	return &PageCacheManager{
		client:     client,
		pageExpire: 5 * time.Minute,
	}
}

const (
	// 评论页缓存键
	CommentPageKey = "post:comments:%d:cursor:%s"
	// 回复页缓存键
	ReplyPageKey = "comment:replies:%d:cursor:%s"
	// 帖子详情缓存键
	PostDetailKey = "post:detail:%d"
)

func CommentPageCacheKey(postID int64, cursor string) string {
	return fmt.Sprintf(CommentPageKey, postID, cursor)
}

func ReplyPageCacheKey(commentID int64, cursor string) string {
	return fmt.Sprintf(ReplyPageKey, commentID, cursor)
}

func PostDetailCacheKey(postID int64) string {
	return fmt.Sprintf(PostDetailKey, postID)
}

// CachePage stores one fetched page under key.
func (pcm *PageCacheManager) CachePage(ctx context.Context, key string, page interface{}) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	return pcm.client.Set(ctx, key, data, pcm.pageExpire).Err()
}

// GetPage loads a cached page into out. A miss returns (false, nil).
func (pcm *PageCacheManager) GetPage(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := pcm.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cached page: %w", err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}
	return true, nil
}

// InvalidatePost drops the cached detail for one post, used after a
// mutation that changes its counters.
func (pcm *PageCacheManager) InvalidatePost(ctx context.Context, postID int64) error {
	return pcm.client.Del(ctx, PostDetailCacheKey(postID)).Err()
}
