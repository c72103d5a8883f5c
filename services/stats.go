package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sova/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	baseDonation     = 100000
	baseContributors = 300
	rupeesPerFarmer  = 200

	statsCacheKey = "campaign:stats"
	statsGenKey   = "campaign:stats:gen"
	statsCacheTTL = 10 * time.Minute
)

// keyGetter is satisfied by both *redis.Client and *redis.Tx.
type keyGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

var errStaleStats = errors.New("stats changed during refresh")

// DonationTotals provides the raw aggregates stats are derived from.
type DonationTotals interface {
	Totals(ctx context.Context) (count int64, sum int64, err error)
}

// StatsService derives campaign progress numbers and caches them in redis.
// A nil redis client disables caching.
type StatsService struct {
	store  DonationTotals
	rdb    *redis.Client
	logger *zap.Logger
}

func NewStatsService(store DonationTotals, rdb *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{store: store, rdb: rdb, logger: logger}
}

// Get returns cached stats when present, computing and caching them otherwise.
func (s *StatsService) Get(ctx context.Context) (models.CampaignStats, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats models.CampaignStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes stats from the datastore and rewrites the cache.
// The write is skipped when Invalidate ran while the totals were read.
func (s *StatsService) Refresh(ctx context.Context) (models.CampaignStats, error) {
	var gen int64
	cacheable := false
	if s.rdb != nil {
		var err error
		if gen, err = s.generation(ctx, s.rdb); err != nil {
			s.logger.Warn("stats generation read failed", zap.Error(err))
		} else {
			cacheable = true
		}
	}

	stats, err := s.Compute(ctx)
	if err != nil {
		return models.CampaignStats{}, err
	}
	if cacheable {
		s.writeCache(ctx, stats, gen)
	}
	return stats, nil
}

func (s *StatsService) writeCache(ctx context.Context, stats models.CampaignStats, gen int64) {
	raw, _ := json.Marshal(stats)
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleStats
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statsCacheKey, raw, statsCacheTTL)
			return nil
		})
		return err
	}, statsGenKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleStats), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug("stats invalidated during refresh, cache not written")
	default:
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func (s *StatsService) generation(ctx context.Context, c keyGetter) (int64, error) {
	gen, err := c.Get(ctx, statsGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Compute derives stats without touching the cache.
func (s *StatsService) Compute(ctx context.Context) (models.CampaignStats, error) {
	count, sum, err := s.store.Totals(ctx)
	if err != nil {
		return models.CampaignStats{}, err
	}
	total := baseDonation + sum
	return models.CampaignStats{
		TotalDonation:       total,
		TotalFarmersReached: total / rupeesPerFarmer,
		TotalContributions:  count + baseContributors,
	}, nil
}

// Invalidate drops the cached stats and bumps the generation so that a
// refresh already in flight does not write its older totals back.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, statsGenKey)
		pipe.Del(ctx, statsCacheKey)
		return nil
	})
	if err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
