package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundkeeper "github.com/openalpha/venture-fund/x/fund/keeper"
	positionkeeper "github.com/openalpha/venture-fund/x/position/keeper"
	positiontypes "github.com/openalpha/venture-fund/x/position/types"
	stakeboostkeeper "github.com/openalpha/venture-fund/x/stakeboost/keeper"
)

// fundPositionAdapter exposes the position ledger to the fund keeper
type fundPositionAdapter struct {
	keeper *positionkeeper.Keeper
}

func newFundPositionAdapter(keeper *positionkeeper.Keeper) fundkeeper.PositionKeeper {
	return fundPositionAdapter{keeper: keeper}
}

func (a fundPositionAdapter) Mint(ctx sdk.Context, fundID, owner string, value math.Int) (uint64, error) {
	return a.keeper.Mint(ctx, fundID, owner, value)
}

func (a fundPositionAdapter) ValueOf(ctx sdk.Context, positionID uint64) (math.Int, error) {
	return a.keeper.ValueOf(ctx, positionID)
}

func (a fundPositionAdapter) ParticipationAt(ctx sdk.Context, fundID, account string, height int64) (math.Int, math.Int) {
	return a.keeper.ParticipationAt(ctx, fundID, account, height)
}

// fundDiscountAdapter exposes the staking discount provider to the fund keeper
type fundDiscountAdapter struct {
	keeper *stakeboostkeeper.Keeper
}

func newFundDiscountAdapter(keeper *stakeboostkeeper.Keeper) fundkeeper.DiscountKeeper {
	return fundDiscountAdapter{keeper: keeper}
}

func (a fundDiscountAdapter) CurrentDiscount(ctx sdk.Context, fundID string) math.LegacyDec {
	if a.keeper == nil {
		return math.LegacyZeroDec()
	}
	return a.keeper.CurrentDiscount(ctx, fundID)
}

func (a fundDiscountAdapter) DiscountOf(ctx sdk.Context, account, fundID string) math.LegacyDec {
	if a.keeper == nil {
		return math.LegacyZeroDec()
	}
	return a.keeper.DiscountOf(ctx, account, fundID)
}

// stakeboostPositionAdapter exposes fund holdings to the stakeboost keeper
type stakeboostPositionAdapter struct {
	keeper *positionkeeper.Keeper
}

func newStakeboostPositionAdapter(keeper *positionkeeper.Keeper) stakeboostkeeper.PositionKeeper {
	return stakeboostPositionAdapter{keeper: keeper}
}

func (a stakeboostPositionAdapter) FundHoldings(ctx sdk.Context, fundID string) []positiontypes.Holding {
	if a.keeper == nil {
		return nil
	}
	return a.keeper.FundHoldings(ctx, fundID)
}
