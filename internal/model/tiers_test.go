package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zipdrop/internal/config"
)

func testTable() TierTable {
	return NewTierTable(config.TierConfig{
		FreeDailyUploads: 2,
		FreeMaxBytes:     2 * 1024 * 1024,
		PremiumMaxBytes:  50 * 1024 * 1024,
	})
}

func TestTierTableLimits(t *testing.T) {
	tiers := testTable()

	free := tiers.Limits(TierFree)
	assert.Equal(t, int64(2*1024*1024), free.MaxBatchBytes)
	assert.Equal(t, 2, free.DailyUploads)
	assert.False(t, Unlimited(free.DailyUploads))

	premium := tiers.Limits(TierPremium)
	assert.Equal(t, int64(50*1024*1024), premium.MaxBatchBytes)
	assert.True(t, Unlimited(premium.DailyUploads))
}

func TestTierTableUnknownFallsBackToFree(t *testing.T) {
	tiers := testTable()
	assert.Equal(t, tiers.Limits(TierFree), tiers.Limits(Tier("enterprise")))
}

func TestBatchSize(t *testing.T) {
	files := []UploadFile{
		{Name: "a.png", Data: make([]byte, 10)},
		{Name: "b.pdf", Data: make([]byte, 32)},
	}
	assert.Equal(t, int64(42), BatchSize(files))
	assert.Equal(t, int64(0), BatchSize(nil))
}
