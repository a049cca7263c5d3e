package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/pkg/utils"
)

// DefaultReportCacheTTL applies when REPORT_CACHE_TTL_SECONDS is unset.
const DefaultReportCacheTTL = 120 * time.Second

// ReportCache stores rendered reports. Implementations fail open: a broken
// cache behaves like an empty one.
type ReportCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, report string)
}

// ReportCacheKey is analytics:<sha256>:<from>:<to>:<mode>:<as of day>. The hash
// covers the records and the engine settings, so a change to either yields a new
// key; the as-of day keeps clock-relative figures from outliving their day.
func ReportCacheKey(records models.RecordSet, settings string, period models.Period, mode models.ReportMode, asOf time.Time) (string, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("hashing report input: %w", err)
	}
	h := sha256.New()
	h.Write(payload)
	h.Write([]byte(settings))
	return fmt.Sprintf("analytics:%s:%s:%s:%s:%s",
		hex.EncodeToString(h.Sum(nil)), models.DayKey(period.From), models.DayKey(period.To), mode, models.DayKey(asOf)), nil
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache caches reports in redis for ttl.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.LogWarn(err, "report cache read failed, recomputing")
		}
		return "", false
	}
	return val, true
}

func (c *redisReportCache) Set(ctx context.Context, key, report string) {
	if err := c.client.Set(ctx, key, report, c.ttl).Err(); err != nil {
		utils.LogWarn(err, "report cache write failed")
	}
}

type noopReportCache struct{}

// NoopReportCache never stores anything.
func NoopReportCache() ReportCache { return noopReportCache{} }

func (noopReportCache) Get(context.Context, string) (string, bool) { return "", false }
func (noopReportCache) Set(context.Context, string, string)        {}

// ReportCacheFromEnv builds the cache from REPORT_CACHE_ENABLED, REDIS_ADDR,
// REDIS_PASSWORD, REDIS_DB and REPORT_CACHE_TTL_SECONDS. The returned close
// function releases the redis client.
func ReportCacheFromEnv(ctx context.Context) (ReportCache, func() error) {
	if !utils.GetenvBool("REPORT_CACHE_ENABLED", false) {
		return NoopReportCache(), func() error { return nil }
	}
	client := redis.NewClient(&redis.Options{
		Addr:     utils.Getenv("REDIS_ADDR", "localhost:6379"),
		Password: utils.Getenv("REDIS_PASSWORD", ""),
		DB:       utils.GetenvInt("REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		utils.LogWarn(err, "redis unreachable, report cache will miss until it recovers")
	}
	ttl := utils.GetenvSeconds("REPORT_CACHE_TTL_SECONDS", DefaultReportCacheTTL)
	utils.LogInfo("Report cache enabled", map[string]interface{}{"addr": client.Options().Addr, "ttl": ttl.String()})
	return NewRedisReportCache(client, ttl), client.Close
}
