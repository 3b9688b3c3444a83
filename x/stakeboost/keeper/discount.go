package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DiscountOf returns an account's carry fee discount for a fund in [0, 1].
// The discount ramps linearly with stake age: MaxDiscount * min(1,
// age/RampBlocks). Accounts with no stake get zero.
func (k *Keeper) DiscountOf(ctx sdk.Context, account, fundID string) math.LegacyDec {
	stake := k.GetStake(ctx, fundID, account)
	if stake == nil || !stake.Amount.IsPositive() {
		return math.LegacyZeroDec()
	}

	config := k.GetDiscountConfig(ctx)
	age := ctx.BlockHeight() - stake.StakedAt
	if age <= 0 {
		return math.LegacyZeroDec()
	}
	if age >= config.RampBlocks {
		return config.MaxDiscount
	}
	ramp := math.LegacyNewDec(age).Quo(math.LegacyNewDec(config.RampBlocks))
	return config.MaxDiscount.Mul(ramp)
}

// CurrentDiscount returns the fund-wide discount applied to a profit
// injection: the participation-weighted average of each current position
// holder's own discount. A fund with no live positions gets zero.
func (k *Keeper) CurrentDiscount(ctx sdk.Context, fundID string) math.LegacyDec {
	holdings := k.positionKeeper.FundHoldings(ctx, fundID)

	total := math.ZeroInt()
	weighted := math.LegacyZeroDec()
	for _, holding := range holdings {
		if !holding.Value.IsPositive() {
			continue
		}
		total = total.Add(holding.Value)
		discount := k.DiscountOf(ctx, holding.Account, fundID)
		if discount.IsPositive() {
			weighted = weighted.Add(discount.MulInt(holding.Value))
		}
	}
	if !total.IsPositive() {
		return math.LegacyZeroDec()
	}
	return weighted.QuoInt(total)
}
