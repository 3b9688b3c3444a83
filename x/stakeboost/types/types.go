package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "stakeboost"
	StoreKey   = ModuleName
)

// Stake records an account's escrowed boost tokens for a fund. StakedAt is
// the height the stake was first opened; topping up an existing stake does
// not reset it.
type Stake struct {
	Staker   string   `json:"staker"`
	FundID   string   `json:"fund_id"`
	Amount   math.Int `json:"amount"`
	StakedAt int64    `json:"staked_at"`
}

// NewStake creates a stake record opened at the given height
func NewStake(staker, fundID string, amount math.Int, height int64) *Stake {
	return &Stake{
		Staker:   staker,
		FundID:   fundID,
		Amount:   amount,
		StakedAt: height,
	}
}

// DefaultBoostDenom is the denom escrowed by stakes
const DefaultBoostDenom = "boost"

// DiscountConfig controls how staking translates into a carry fee discount.
// A stake ramps linearly from zero to MaxDiscount over RampBlocks blocks and
// stays at MaxDiscount afterwards.
type DiscountConfig struct {
	Denom       string         `json:"denom"`
	MaxDiscount math.LegacyDec `json:"max_discount"`
	RampBlocks  int64          `json:"ramp_blocks"`
}

// DefaultDiscountConfig returns a 50% maximum discount reached after roughly
// one week of blocks at 6s block time.
func DefaultDiscountConfig() DiscountConfig {
	return DiscountConfig{
		Denom:       DefaultBoostDenom,
		MaxDiscount: math.LegacyNewDecWithPrec(5, 1),
		RampBlocks:  100_800,
	}
}

// Validate checks config bounds
func (c DiscountConfig) Validate() error {
	if c.Denom == "" {
		return ErrInvalidConfig
	}
	if c.MaxDiscount.IsNil() || c.MaxDiscount.IsNegative() || c.MaxDiscount.GT(math.LegacyOneDec()) {
		return ErrInvalidConfig
	}
	if c.RampBlocks <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
