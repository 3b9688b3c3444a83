package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// MsgServer defines the fund MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

var _ types.MsgServer = (*MsgServer)(nil)

// CreateFund handles MsgCreateFund
func (m *MsgServer) CreateFund(ctx context.Context, msg *types.MsgCreateFund) (*types.MsgCreateFundResponse, error) {
	entryRate, err := math.LegacyNewDecFromStr(msg.EntryFeeRate)
	if err != nil {
		return nil, types.ErrInvalidFeeConfig
	}
	carryRate, err := math.LegacyNewDecFromStr(msg.CarryFeeRate)
	if err != nil {
		return nil, types.ErrInvalidFeeConfig
	}
	cap, ok := math.NewIntFromString(msg.InvestmentCap)
	if !ok {
		return nil, types.ErrInvalidFeeConfig
	}

	fund, err := m.keeper.CreateFund(ctx, msg.Operator, msg.FundID, msg.Denom, msg.Treasury, types.FeeConfig{
		EntryFeeRate:  entryRate,
		CarryFeeRate:  carryRate,
		InvestmentCap: cap,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateFundResponse{FundID: fund.FundID}, nil
}

// Contribute handles MsgContribute
func (m *MsgServer) Contribute(ctx context.Context, msg *types.MsgContribute) (*types.MsgContributeResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	positionID, err := m.keeper.Contribute(ctx, msg.Contributor, msg.FundID, amount, msg.Metadata)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fund := m.keeper.GetFund(sdkCtx, msg.FundID)
	fee := fund.FeeConfig.EntryFeeRate.MulInt(amount).TruncateInt()

	return &types.MsgContributeResponse{
		PositionID: positionID,
		Fee:        fee.String(),
		NetAmount:  amount.Sub(fee).String(),
	}, nil
}

// CloseFunding handles MsgCloseFunding
func (m *MsgServer) CloseFunding(ctx context.Context, msg *types.MsgCloseFunding) (*types.MsgCloseFundingResponse, error) {
	fund, err := m.keeper.CloseFunding(ctx, msg.Operator, msg.FundID)
	if err != nil {
		return nil, err
	}
	return &types.MsgCloseFundingResponse{Phase: fund.Phase}, nil
}

// DeployCapital handles MsgDeployCapital
func (m *MsgServer) DeployCapital(ctx context.Context, msg *types.MsgDeployCapital) (*types.MsgDeployCapitalResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	fund, err := m.keeper.DeployCapital(ctx, msg.Operator, msg.FundID, msg.Destination, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgDeployCapitalResponse{RemainingBalance: fund.Balance.String()}, nil
}

// ReturnCapital handles MsgReturnCapital
func (m *MsgServer) ReturnCapital(ctx context.Context, msg *types.MsgReturnCapital) (*types.MsgReturnCapitalResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	fund, err := m.keeper.ReturnCapital(ctx, msg.From, msg.FundID, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgReturnCapitalResponse{NewBalance: fund.Balance.String()}, nil
}

// CloseFund handles MsgCloseFund
func (m *MsgServer) CloseFund(ctx context.Context, msg *types.MsgCloseFund) (*types.MsgCloseFundResponse, error) {
	fund, err := m.keeper.CloseFund(ctx, msg.Operator, msg.FundID)
	if err != nil {
		return nil, err
	}
	return &types.MsgCloseFundResponse{Phase: fund.Phase}, nil
}

// InjectProfit handles MsgInjectProfit
func (m *MsgServer) InjectProfit(ctx context.Context, msg *types.MsgInjectProfit) (*types.MsgInjectProfitResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	payout, err := m.keeper.InjectProfit(ctx, msg.Operator, msg.FundID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgInjectProfitResponse{
		PayoutIndex: payout.Index,
		Fee:         payout.FeeAmount.String(),
		NetAmount:   payout.NetAmount.String(),
	}, nil
}

// Withdraw handles MsgWithdraw
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	remaining, err := m.keeper.Withdraw(ctx, msg.Account, msg.FundID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{
		Withdrawn: amount.String(),
		Remaining: remaining.String(),
	}, nil
}

// SetFeeConfig handles MsgSetFeeConfig
func (m *MsgServer) SetFeeConfig(ctx context.Context, msg *types.MsgSetFeeConfig) (*types.MsgSetFeeConfigResponse, error) {
	entryRate, err := math.LegacyNewDecFromStr(msg.EntryFeeRate)
	if err != nil {
		return nil, types.ErrInvalidFeeConfig
	}
	carryRate, err := math.LegacyNewDecFromStr(msg.CarryFeeRate)
	if err != nil {
		return nil, types.ErrInvalidFeeConfig
	}
	cap, ok := math.NewIntFromString(msg.InvestmentCap)
	if !ok {
		return nil, types.ErrInvalidFeeConfig
	}

	if err := m.keeper.SetFeeConfig(ctx, msg.Operator, msg.FundID, types.FeeConfig{
		EntryFeeRate:  entryRate,
		CarryFeeRate:  carryRate,
		InvestmentCap: cap,
	}); err != nil {
		return nil, err
	}

	return &types.MsgSetFeeConfigResponse{}, nil
}
