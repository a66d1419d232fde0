package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const dashboardKeyPrefix = "mathtatag:dashboard:"

// DashboardCache 看板结果缓存；Client 为空或 TTL 为 0 时不缓存
type DashboardCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{Client: rdb, TTL: ttl}
}

func (c *DashboardCache) enabled() bool {
	return c != nil && c.Client != nil && c.TTL > 0
}

// Get 命中时解码到 dst 并返回 true
func (c *DashboardCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	val, err := c.Client.Get(ctx, dashboardKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DashboardCache) Set(ctx context.Context, key string, v interface{}) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, dashboardKeyPrefix+key, data, c.TTL).Err()
}

// Invalidate 清空全部看板缓存，数据量小，直接按前缀扫描删除
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	iter := c.Client.Scan(ctx, 0, dashboardKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
