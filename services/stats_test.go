package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"sova/models"
	"sova/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestStatsService_EmptyCampaign(t *testing.T) {
	stats := NewStatsService(testutil.OpenStore(t), nil, zap.NewNop())

	got, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStats{
		TotalDonation:       100000,
		TotalFarmersReached: 500,
		TotalContributions:  300,
	}, got)
}

func TestStatsService_Compute(t *testing.T) {
	store := testutil.OpenStore(t)
	testutil.SeedDonations(t, store, "1000001", "1000002")
	stats := NewStatsService(store, nil, zap.NewNop())

	got, err := stats.Compute(context.Background())
	require.NoError(t, err)
	// 100000 + 2*598
	assert.EqualValues(t, 101196, got.TotalDonation)
	assert.EqualValues(t, 505, got.TotalFarmersReached)
	assert.EqualValues(t, 302, got.TotalContributions)
}

func TestStatsService_CacheAndInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := testutil.OpenStore(t)
	stats := NewStatsService(store, rdb, zap.NewNop())

	first, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 300, first.TotalContributions)
	assert.True(t, mr.Exists(statsCacheKey))
	assert.Equal(t, statsCacheTTL, mr.TTL(statsCacheKey))

	testutil.SeedDonations(t, store, "1000001")

	cached, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	stats.Invalidate(ctx)
	assert.False(t, mr.Exists(statsCacheKey))

	fresh, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 301, fresh.TotalContributions)
	assert.EqualValues(t, 100598, fresh.TotalDonation)
}

func TestStatsService_RedisDownFallsBackToStore(t *testing.T) {
	mr, rdb := newTestRedis(t)
	stats := NewStatsService(testutil.OpenStore(t), rdb, zap.NewNop())
	mr.Close()

	got, err := stats.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 100000, got.TotalDonation)
}

func TestStatsService_RecorderInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := testutil.OpenStore(t)
	stats := NewStatsService(store, rdb, zap.NewNop())
	recorder := NewDonationRecorder(store, nil, stats, callbackSecret, zap.NewNop())

	_, err := stats.Get(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(statsCacheKey))

	_, err = recorder.RecordCompletedPayment(ctx, validCallback("order_1", "pay_1"), SignCallback(callbackSecret, "order_1", "pay_1"), nil)
	require.NoError(t, err)
	assert.False(t, mr.Exists(statsCacheKey))

	got, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100549, got.TotalDonation)
}

// gatedTotals reads the real totals, then holds the first caller until
// release is closed.
type gatedTotals struct {
	DonationTotals
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedTotals) Totals(ctx context.Context) (int64, int64, error) {
	count, sum, err := g.DonationTotals.Totals(ctx)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return count, sum, err
}

func TestStatsService_DonationDuringRefreshIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := testutil.OpenStore(t)
	gated := &gatedTotals{DonationTotals: store, entered: make(chan struct{}), release: make(chan struct{})}
	stats := NewStatsService(gated, rdb, zap.NewNop())
	recorder := NewDonationRecorder(store, nil, stats, callbackSecret, zap.NewNop())

	refreshed := make(chan models.CampaignStats)
	go func() {
		got, err := stats.Refresh(ctx)
		assert.NoError(t, err)
		refreshed <- got
	}()

	<-gated.entered
	_, err := recorder.RecordCompletedPayment(ctx, validCallback("order_1", "pay_1"), SignCallback(callbackSecret, "order_1", "pay_1"), nil)
	require.NoError(t, err)
	close(gated.release)

	stale := <-refreshed
	assert.EqualValues(t, 100000, stale.TotalDonation)
	assert.False(t, mr.Exists(statsCacheKey), "refresh must not cache totals read before the donation")

	got, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100549, got.TotalDonation)
	assert.EqualValues(t, 301, got.TotalContributions)
	assert.True(t, mr.Exists(statsCacheKey))
}

func TestStatsService_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	stats := NewStatsService(testutil.OpenStore(t), rdb, zap.NewNop())

	stats.Invalidate(ctx)
	stats.Invalidate(ctx)

	gen, err := mr.Get(statsGenKey)
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}

func TestStartStatsCron(t *testing.T) {
	mr, rdb := newTestRedis(t)
	stats := NewStatsService(testutil.OpenStore(t), rdb, zap.NewNop())

	c := StartStatsCron(stats, zap.NewNop())
	defer c.Stop()

	assert.Eventually(t, func() bool { return mr.Exists(statsCacheKey) }, 5*time.Second, 20*time.Millisecond)
	assert.Len(t, c.Entries(), 1)
}
