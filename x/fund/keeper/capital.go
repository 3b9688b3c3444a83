package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// CreateFund bootstraps a fund in the funding phase
func (k *Keeper) CreateFund(ctx context.Context, operator, fundID, denom, treasury string, cfg types.FeeConfig) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := types.ValidateFundID(fundID); err != nil {
		return nil, err
	}
	if k.GetFund(sdkCtx, fundID) != nil {
		return nil, types.ErrFundExists
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fund := types.NewFund(fundID, denom, operator, treasury, cfg)
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFundCreated,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyPhase, fund.Phase),
		),
	)

	k.logger.Info("Fund created",
		"fund_id", fundID,
		"denom", denom,
		"entry_fee_rate", cfg.EntryFeeRate.String(),
		"carry_fee_rate", cfg.CarryFeeRate.String(),
	)

	return fund, nil
}

// Contribute accepts currency during the funding phase, takes the entry fee,
// and mints a position recording the gross contribution.
//
// The minted position carries the gross amount: the entry fee reduces the
// capital the fund holds, not the contributor's entitlement basis.
func (k *Keeper) Contribute(ctx context.Context, contributor, fundID string, amount math.Int, metadata string) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return 0, types.ErrFundNotFound
	}
	if fund.Phase != types.PhaseFunding {
		return 0, types.ErrWrongPhase
	}
	if !amount.IsPositive() {
		return 0, types.ErrInvalidAmount
	}
	if !fund.FeeConfig.InvestmentCap.IsZero() &&
		fund.TotalContributed.Add(amount).GT(fund.FeeConfig.InvestmentCap) {
		return 0, types.ErrCapExceeded
	}

	contributorAddr, err := sdk.AccAddressFromBech32(contributor)
	if err != nil {
		return 0, types.ErrInvalidAddress
	}
	treasuryAddr, err := sdk.AccAddressFromBech32(fund.Treasury)
	if err != nil {
		return 0, types.ErrInvalidAddress
	}

	fee := fund.FeeConfig.EntryFeeRate.MulInt(amount).TruncateInt()
	net := amount.Sub(fee)

	// Pull the full amount into the module account, then pay the entry fee
	// out to the treasury.
	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, contributorAddr, types.ModuleName, sdk.NewCoins(sdk.NewCoin(fund.Denom, amount)),
	); err != nil {
		return 0, err
	}
	if fee.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(
			ctx, types.ModuleName, treasuryAddr, sdk.NewCoins(sdk.NewCoin(fund.Denom, fee)),
		); err != nil {
			return 0, err
		}
	}

	positionID, err := k.positionKeeper.Mint(sdkCtx, fundID, contributor, amount)
	if err != nil {
		return 0, err
	}

	fund.TotalContributed = fund.TotalContributed.Add(amount)
	fund.Balance = fund.Balance.Add(net)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContribution,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyContributor, contributor),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyPositionID, strconv.FormatUint(positionID, 10)),
		),
	)

	k.logger.Info("Contribution processed",
		"fund_id", fundID,
		"contributor", contributor,
		"amount", amount.String(),
		"entry_fee", fee.String(),
		"position_id", positionID,
	)

	return positionID, nil
}

// CloseFunding transitions the fund from funding to deployed
func (k *Keeper) CloseFunding(ctx context.Context, operator, fundID string) (*types.Fund, error) {
	return k.advancePhase(ctx, operator, fundID, types.PhaseFunding, types.PhaseDeployed, types.EventTypeFundingClosed)
}

// CloseFund transitions the fund from deployed to closed. Withdrawals remain
// available; further profit injections and deployments are rejected.
func (k *Keeper) CloseFund(ctx context.Context, operator, fundID string) (*types.Fund, error) {
	return k.advancePhase(ctx, operator, fundID, types.PhaseDeployed, types.PhaseClosed, types.EventTypeFundClosed)
}

func (k *Keeper) advancePhase(ctx context.Context, operator, fundID, from, to, eventType string) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	if operator != fund.Operator {
		return nil, types.ErrUnauthorized
	}
	if fund.Phase != from {
		return nil, types.ErrWrongPhase
	}

	fund.Phase = to
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyPhase, to),
		),
	)

	k.logger.Info("Fund phase advanced", "fund_id", fundID, "phase", to)

	return fund, nil
}

// DeployCapital moves pooled capital to an external destination
func (k *Keeper) DeployCapital(ctx context.Context, operator, fundID, destination string, amount math.Int) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	if operator != fund.Operator {
		return nil, types.ErrUnauthorized
	}
	if fund.Phase != types.PhaseDeployed {
		return nil, types.ErrWrongPhase
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if amount.GT(fund.Balance) {
		return nil, types.ErrInsufficientBalance
	}

	destAddr, err := sdk.AccAddressFromBech32(destination)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(
		ctx, types.ModuleName, destAddr, sdk.NewCoins(sdk.NewCoin(fund.Denom, amount)),
	); err != nil {
		return nil, err
	}

	fund.Balance = fund.Balance.Sub(amount)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCapitalDeployed,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyDestination, destination),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Capital deployed",
		"fund_id", fundID,
		"destination", destination,
		"amount", amount.String(),
	)

	return fund, nil
}

// ReturnCapital accepts principal back from an external project. Principal is
// not profit: the fund balance grows, cumulative profit and the breakeven
// threshold do not move.
func (k *Keeper) ReturnCapital(ctx context.Context, from, fundID string, amount math.Int) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	fromAddr, err := sdk.AccAddressFromBech32(from)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, fromAddr, types.ModuleName, sdk.NewCoins(sdk.NewCoin(fund.Denom, amount)),
	); err != nil {
		return nil, err
	}

	fund.Balance = fund.Balance.Add(amount)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCapitalReturned,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Capital returned", "fund_id", fundID, "amount", amount.String())

	return fund, nil
}

// SetFeeConfig updates the fund's rates and cap
func (k *Keeper) SetFeeConfig(ctx context.Context, operator, fundID string, cfg types.FeeConfig) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if operator != fund.Operator {
		return types.ErrUnauthorized
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fund.FeeConfig = cfg
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeConfigChanged,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute("entry_fee_rate", cfg.EntryFeeRate.String()),
			sdk.NewAttribute("carry_fee_rate", cfg.CarryFeeRate.String()),
			sdk.NewAttribute("investment_cap", cfg.InvestmentCap.String()),
		),
	)

	k.logger.Info("Fee config changed",
		"fund_id", fundID,
		"entry_fee_rate", cfg.EntryFeeRate.String(),
		"carry_fee_rate", cfg.CarryFeeRate.String(),
	)

	return nil
}
