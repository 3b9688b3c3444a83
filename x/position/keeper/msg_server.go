package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/position/types"
)

// MsgServer defines the position MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

var _ types.MsgServer = (*MsgServer)(nil)

// TransferPosition handles MsgTransferPosition
func (m *MsgServer) TransferPosition(ctx context.Context, msg *types.MsgTransferPosition) (*types.MsgTransferPositionResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Transfer(sdkCtx, msg.PositionID, msg.Owner, msg.Recipient); err != nil {
		return nil, err
	}
	return &types.MsgTransferPositionResponse{}, nil
}

// SplitPosition handles MsgSplitPosition
func (m *MsgServer) SplitPosition(ctx context.Context, msg *types.MsgSplitPosition) (*types.MsgSplitPositionResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	values := make([]math.Int, 0, len(msg.Values))
	for _, s := range msg.Values {
		v, ok := math.NewIntFromString(s)
		if !ok {
			return nil, types.ErrInvalidValue
		}
		values = append(values, v)
	}

	ids, err := m.keeper.Split(sdkCtx, msg.PositionID, msg.Owner, values)
	if err != nil {
		return nil, err
	}
	return &types.MsgSplitPositionResponse{PositionIDs: ids}, nil
}
