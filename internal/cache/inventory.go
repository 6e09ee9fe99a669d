package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	BlogKeyPrefix = "blog:%d"
	UserKeyPrefix = "user:%s"
)

const (
	BlogTTL = 5 * time.Minute
	UserTTL = 5 * time.Minute
)

func BlogKey(blogID uint) string {
	return fmt.Sprintf(BlogKeyPrefix, blogID)
}

func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateBlog(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogKey(blogID))
}
