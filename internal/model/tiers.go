package model

import "zipdrop/internal/config"

// Tier identifies a user class. Free is the default; premium is unlocked by
// completing the paid checkout and lives only in the user's session.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// TierLimits defines the upload limits for a tier.
// DailyUploads of -1 means unlimited.
type TierLimits struct {
	MaxBatchBytes int64
	DailyUploads  int
}

// TierTable maps tiers to their limits.
type TierTable map[Tier]TierLimits

// NewTierTable builds the tier table from configuration. Premium has no daily
// limit; only its batch size ceiling comes from config.
func NewTierTable(c config.TierConfig) TierTable {
	return TierTable{
		TierFree: {
			MaxBatchBytes: c.FreeMaxBytes,
			DailyUploads:  c.FreeDailyUploads,
		},
		TierPremium: {
			MaxBatchBytes: c.PremiumMaxBytes,
			DailyUploads:  -1, // unlimited
		},
	}
}

// Limits returns the limits for a tier, defaulting to the free tier for
// unknown values as a safe fallback.
func (t TierTable) Limits(tier Tier) TierLimits {
	if limits, ok := t[tier]; ok {
		return limits
	}
	return t[TierFree]
}

// Unlimited reports whether a daily limit value represents unlimited uploads.
func Unlimited(limit int) bool {
	return limit < 0
}
