package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// InjectProfit credits returned profit to the fund and appends a payout.
//
// The carry fee is gated on the breakeven threshold: cumulative gross profit
// up to the total gross capital ever contributed is fee-free, only the
// portion above it carries the fee. Gating on cumulative contributions rather
// than current balance keeps the fee base independent of earlier withdrawals
// and redeployments.
//
// The staking discount is resolved once here, at injection time, so every
// unit of a payout carries a single fee rate and the payout list alone
// reconstructs the fee accounting.
func (k *Keeper) InjectProfit(ctx context.Context, operator, fundID string, grossAmount math.Int) (*types.Payout, error) {
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
	if !grossAmount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	operatorAddr, err := sdk.AccAddressFromBech32(operator)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}
	treasuryAddr, err := sdk.AccAddressFromBech32(fund.Treasury)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}

	aboveBreakeven := k.feeEligiblePortion(fund, grossAmount)
	discount := k.discountKeeper.CurrentDiscount(sdkCtx, fundID)
	fee := carryFee(aboveBreakeven, fund.FeeConfig.CarryFeeRate, discount)
	net := grossAmount.Sub(fee)

	// Gross in, fee straight out to the treasury.
	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, operatorAddr, types.ModuleName, sdk.NewCoins(sdk.NewCoin(fund.Denom, grossAmount)),
	); err != nil {
		return nil, err
	}
	if fee.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(
			ctx, types.ModuleName, treasuryAddr, sdk.NewCoins(sdk.NewCoin(fund.Denom, fee)),
		); err != nil {
			return nil, err
		}
	}

	payout := &types.Payout{
		Index:           k.PayoutsCount(sdkCtx, fundID),
		Height:          sdkCtx.BlockHeight(),
		GrossAmount:     grossAmount,
		FeeAmount:       fee,
		NetAmount:       net,
		DiscountApplied: discount,
		Timestamp:       time.Now().Unix(),
	}
	k.AppendPayout(sdkCtx, fundID, payout)

	fund.CumulativeProfit = fund.CumulativeProfit.Add(grossAmount)
	fund.Balance = fund.Balance.Add(net)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePayoutRecorded,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyPayoutIndex, strconv.FormatUint(payout.Index, 10)),
			sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatInt(payout.Height, 10)),
			sdk.NewAttribute(types.AttributeKeyGrossAmount, grossAmount.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyNetAmount, net.String()),
			sdk.NewAttribute(types.AttributeKeyDiscount, discount.String()),
		),
	)

	k.logger.Info("Payout recorded",
		"fund_id", fundID,
		"index", payout.Index,
		"gross", grossAmount.String(),
		"fee", fee.String(),
		"net", net.String(),
		"discount", discount.String(),
	)

	return payout, nil
}

// feeEligiblePortion returns how much of grossAmount lies above the fund's
// breakeven threshold given its cumulative profit so far.
func (k *Keeper) feeEligiblePortion(fund *types.Fund, grossAmount math.Int) math.Int {
	belowBreakeven := fund.BreakevenRemaining()
	if belowBreakeven.GTE(grossAmount) {
		return math.ZeroInt()
	}
	return grossAmount.Sub(belowBreakeven)
}

// carryFee applies the discounted carry rate to the fee-eligible portion,
// truncating toward zero.
func carryFee(aboveBreakeven math.Int, carryRate, discount math.LegacyDec) math.Int {
	if !aboveBreakeven.IsPositive() {
		return math.ZeroInt()
	}
	effectiveRate := carryRate.Mul(math.LegacyOneDec().Sub(discount))
	if effectiveRate.IsNegative() {
		return math.ZeroInt()
	}
	return effectiveRate.MulInt(aboveBreakeven).TruncateInt()
}

// WithdrawalCarryFee previews the fee a hypothetical profit injection of
// grossAmount would incur right now, priced with the querying account's own
// staking discount. Integrators use it to quote before acting; it mutates
// nothing.
func (k *Keeper) WithdrawalCarryFee(ctx sdk.Context, fundID, account string, grossAmount math.Int) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if !grossAmount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	aboveBreakeven := k.feeEligiblePortion(fund, grossAmount)
	discount := k.discountKeeper.DiscountOf(ctx, account, fundID)
	return carryFee(aboveBreakeven, fund.FeeConfig.CarryFeeRate, discount), nil
}
