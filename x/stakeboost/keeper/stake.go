package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/stakeboost/types"
)

// Stake escrows boost tokens into the module account. A top-up on an
// existing stake keeps the original StakedAt, so the ramp already earned is
// not forfeited.
func (k *Keeper) Stake(ctx sdk.Context, staker, fundID string, amount math.Int) (math.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAddress
	}

	config := k.GetDiscountConfig(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(config.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, stakerAddr, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), err
	}

	stake := k.GetStake(ctx, fundID, staker)
	if stake == nil {
		stake = types.NewStake(staker, fundID, amount, ctx.BlockHeight())
	} else {
		stake.Amount = stake.Amount.Add(amount)
	}
	k.SetStake(ctx, stake)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStaked,
			sdk.NewAttribute(types.AttributeKeyStaker, staker),
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyTotalStaked, stake.Amount.String()),
		),
	)

	k.logger.Info("Stake added",
		"staker", staker,
		"fund_id", fundID,
		"amount", amount.String(),
		"total_staked", stake.Amount.String(),
	)

	return stake.Amount, nil
}

// Unstake releases escrowed boost tokens back to the staker. A full unstake
// deletes the record; a later stake starts a fresh ramp. A partial unstake
// keeps StakedAt for the remainder.
func (k *Keeper) Unstake(ctx sdk.Context, staker, fundID string, amount math.Int) (math.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	stakerAddr, err := sdk.AccAddressFromBech32(staker)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAddress
	}

	stake := k.GetStake(ctx, fundID, staker)
	if stake == nil {
		return math.ZeroInt(), types.ErrStakeNotFound
	}
	if amount.GT(stake.Amount) {
		return math.ZeroInt(), types.ErrInsufficientStake
	}

	config := k.GetDiscountConfig(ctx)
	coins := sdk.NewCoins(sdk.NewCoin(config.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, stakerAddr, coins); err != nil {
		return math.ZeroInt(), err
	}

	stake.Amount = stake.Amount.Sub(amount)
	if stake.Amount.IsZero() {
		k.deleteStake(ctx, fundID, staker)
	} else {
		k.SetStake(ctx, stake)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnstaked,
			sdk.NewAttribute(types.AttributeKeyStaker, staker),
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyTotalStaked, stake.Amount.String()),
		),
	)

	k.logger.Info("Stake released",
		"staker", staker,
		"fund_id", fundID,
		"amount", amount.String(),
		"total_staked", stake.Amount.String(),
	)

	return stake.Amount, nil
}
