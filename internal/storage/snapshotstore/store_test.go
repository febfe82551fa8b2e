package snapshotstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinwatchd/coinwatch/internal/domain"
)

func seed() []domain.Coin {
	return []domain.Coin{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 67000},
		{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Price: 3500},
	}
}

func TestNewStoreSeedsFallback(t *testing.T) {
	s := New(seed())

	snap := s.Current()
	require.Len(t, snap.Records, 2)
	assert.Equal(t, domain.SourceFallback, snap.Source)
	assert.True(t, snap.LastUpdated.IsZero())
	assert.False(t, snap.Refreshing)
	assert.Empty(t, snap.LastError)
}

func TestBeginMarksRefreshingOnly(t *testing.T) {
	s := New(seed())

	s.Begin()

	snap := s.Current()
	assert.True(t, snap.Refreshing)
	assert.True(t, snap.LastUpdated.IsZero())
	assert.Len(t, snap.Records, 2)
}

func TestApplySuccess(t *testing.T) {
	s := New(seed())
	s.Begin()

	now := time.Now()
	live := []domain.Coin{{ID: "solana", Name: "Solana", Symbol: "SOL", Price: 160}}
	s.ApplySuccess(live, now)

	snap := s.Current()
	assert.Equal(t, live, snap.Records)
	assert.Equal(t, now, snap.LastUpdated)
	assert.Equal(t, domain.SourceLive, snap.Source)
	assert.False(t, snap.Refreshing)
	assert.Empty(t, snap.LastError)
}

func TestApplySuccessClearsPreviousError(t *testing.T) {
	s := New(seed())
	s.Begin()
	s.ApplyFallback(seed(), time.Now(), "upstream error: status 500")

	require.NotEmpty(t, s.Current().LastError)

	s.Begin()
	s.ApplySuccess(seed(), time.Now())
	assert.Empty(t, s.Current().LastError)
}

func TestApplyFallback(t *testing.T) {
	s := New(seed())
	s.Begin()

	now := time.Now()
	s.ApplyFallback(seed(), now, "transport error (showing fallback data)")

	snap := s.Current()
	assert.Equal(t, domain.SourceFallback, snap.Source)
	assert.Equal(t, now, snap.LastUpdated)
	assert.Equal(t, "transport error (showing fallback data)", snap.LastError)
	assert.False(t, snap.Refreshing)
	assert.NotEmpty(t, snap.Records)
}

func TestCloseDropsLateWrites(t *testing.T) {
	s := New(seed())
	before := s.Current()

	s.Close()

	s.Begin()
	s.ApplySuccess([]domain.Coin{{ID: "late"}}, time.Now())
	s.ApplyFallback([]domain.Coin{{ID: "later"}}, time.Now(), "boom")

	after := s.Current()
	assert.Equal(t, before.Records, after.Records)
	assert.True(t, after.LastUpdated.IsZero())
	assert.Empty(t, after.LastError)
	assert.False(t, after.Refreshing)
}
