package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/stakeboost/types"
)

// MsgServer defines the stakeboost MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

var _ types.MsgServer = (*MsgServer)(nil)

// Stake handles MsgStake
func (m *MsgServer) Stake(ctx context.Context, msg *types.MsgStake) (*types.MsgStakeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	total, err := m.keeper.Stake(sdkCtx, msg.Staker, msg.FundID, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgStakeResponse{TotalStaked: total.String()}, nil
}

// Unstake handles MsgUnstake
func (m *MsgServer) Unstake(ctx context.Context, msg *types.MsgUnstake) (*types.MsgUnstakeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	total, err := m.keeper.Unstake(sdkCtx, msg.Staker, msg.FundID, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgUnstakeResponse{TotalStaked: total.String()}, nil
}
