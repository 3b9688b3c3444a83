package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// QueryServer defines the fund QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Fund returns a fund by ID
func (q *QueryServer) Fund(ctx context.Context, fundID string) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fund := q.keeper.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	return fund, nil
}

// Funds returns all funds
func (q *QueryServer) Funds(ctx context.Context) ([]*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetAllFunds(sdkCtx), nil
}

// Payouts returns payouts for a fund, oldest first, with pagination
func (q *QueryServer) Payouts(ctx context.Context, fundID string, offset, limit uint64) ([]*types.Payout, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetFund(sdkCtx, fundID) == nil {
		return nil, 0, types.ErrFundNotFound
	}

	all := q.keeper.GetPayouts(sdkCtx, fundID)
	total := uint64(len(all))

	if offset >= total {
		return []*types.Payout{}, total, nil
	}
	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}
	return all[offset:end], total, nil
}

// PayoutsCount returns the number of payouts recorded for a fund
func (q *QueryServer) PayoutsCount(ctx context.Context, fundID string) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetFund(sdkCtx, fundID) == nil {
		return 0, types.ErrFundNotFound
	}
	return q.keeper.PayoutsCount(sdkCtx, fundID), nil
}

// AvailableFunds returns the withdrawable amount for an account
func (q *QueryServer) AvailableFunds(ctx context.Context, fundID, account string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetFund(sdkCtx, fundID) == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	return q.keeper.AvailableFunds(sdkCtx, fundID, account), nil
}

// WithdrawalState returns cumulative withdrawals for an account
func (q *QueryServer) WithdrawalState(ctx context.Context, fundID, account string) (*types.WithdrawalState, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetFund(sdkCtx, fundID) == nil {
		return nil, types.ErrFundNotFound
	}
	return q.keeper.GetWithdrawalState(sdkCtx, fundID, account), nil
}

// WithdrawalCarryFee previews the carry fee for a hypothetical injection
func (q *QueryServer) WithdrawalCarryFee(ctx context.Context, fundID, account string, amount math.Int) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.WithdrawalCarryFee(sdkCtx, fundID, account, amount)
}
