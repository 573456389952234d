// Package cache holds the redis-backed cache for completed-election
// results. The cache is an optimization only: every operation degrades to
// the database on error.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clubhub/clubhub-api/internal/config"
	"github.com/clubhub/clubhub-api/internal/domain"
)

const resultsTTL = time.Hour

type ResultsCache struct {
	client *redis.Client
}

func NewResultsCache(conf *config.RedisConfig) *ResultsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	return &ResultsCache{
		client: client,
	}
}

func (c *ResultsCache) Get(ctx context.Context, electionID uint) (domain.ElectionResults, bool) {
	payload, err := c.client.Get(ctx, resultsKey(electionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("results cache read failed", zap.Uint("election_id", electionID), zap.Error(err))
		}

		return domain.ElectionResults{}, false
	}

	var results domain.ElectionResults
	if err = json.Unmarshal(payload, &results); err != nil {
		zap.L().Warn("results cache payload corrupt", zap.Uint("election_id", electionID), zap.Error(err))

		return domain.ElectionResults{}, false
	}

	return results, true
}

func (c *ResultsCache) Set(ctx context.Context, results domain.ElectionResults) {
	payload, err := json.Marshal(results)
	if err != nil {
		zap.L().Warn("results cache marshal failed", zap.Uint("election_id", results.ElectionID), zap.Error(err))

		return
	}

	if err = c.client.Set(ctx, resultsKey(results.ElectionID), payload, resultsTTL).Err(); err != nil {
		zap.L().Warn("results cache write failed", zap.Uint("election_id", results.ElectionID), zap.Error(err))
	}
}

func (c *ResultsCache) Invalidate(ctx context.Context, electionID uint) {
	if err := c.client.Del(ctx, resultsKey(electionID)).Err(); err != nil {
		zap.L().Warn("results cache invalidate failed", zap.Uint("election_id", electionID), zap.Error(err))
	}
}

func resultsKey(electionID uint) string {
	return fmt.Sprintf("results:%d", electionID)
}
