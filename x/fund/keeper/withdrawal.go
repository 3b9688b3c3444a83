package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// AvailableFunds returns the participant's withdrawable amount: the sum over
// all payouts of their pro-rata share at each payout's height, minus what
// they have already withdrawn.
//
// Each payout's share is fixed by the ownership recorded at that payout's
// height, so transferring or splitting a position afterwards never moves
// entitlement to payouts that predate the transfer. Integer division
// truncates: a share that rounds to zero for a payout is zero for that
// payout, permanently.
//
// Cost is linear in the number of payouts, which is the deliberate
// simplicity trade-off: batching profit injections keeps the scan short.
func (k *Keeper) AvailableFunds(ctx sdk.Context, fundID, account string) math.Int {
	total := math.ZeroInt()
	for _, payout := range k.GetPayouts(ctx, fundID) {
		participation, totalParticipation := k.positionKeeper.ParticipationAt(ctx, fundID, account, payout.Height)
		if !totalParticipation.IsPositive() {
			// A payout that predates any participation is a valid
			// historical state and simply contributes nothing.
			continue
		}
		share := payout.NetAmount.Mul(participation).Quo(totalParticipation)
		total = total.Add(share)
	}

	withdrawn := k.GetWithdrawalState(ctx, fundID, account).TotalWithdrawn
	available := total.Sub(withdrawn)
	if available.IsNegative() {
		return math.ZeroInt()
	}
	return available
}

// Withdraw pays out part of the participant's accrued entitlement
func (k *Keeper) Withdraw(ctx context.Context, account, fundID string, amount math.Int) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund := k.GetFund(sdkCtx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	available := k.AvailableFunds(sdkCtx, fundID, account)
	if amount.GT(available) {
		return math.ZeroInt(), types.ErrWithdrawalExceedsAvailableFunds
	}

	// Payout accounting guarantees the balance covers every entitlement; a
	// shortfall here is a bookkeeping bug, not a user error.
	if amount.GT(fund.Balance) {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}

	accountAddr, err := sdk.AccAddressFromBech32(account)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAddress
	}

	state := k.GetWithdrawalState(sdkCtx, fundID, account)
	state.TotalWithdrawn = state.TotalWithdrawn.Add(amount)
	k.SetWithdrawalState(sdkCtx, state)

	fund.Balance = fund.Balance.Sub(amount)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(sdkCtx, fund)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(
		ctx, types.ModuleName, accountAddr, sdk.NewCoins(sdk.NewCoin(fund.Denom, amount)),
	); err != nil {
		return math.ZeroInt(), err
	}

	remaining := available.Sub(amount)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawal,
			sdk.NewAttribute(types.AttributeKeyFundID, fundID),
			sdk.NewAttribute(types.AttributeKeyAccount, account),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Withdrawal processed",
		"fund_id", fundID,
		"account", account,
		"amount", amount.String(),
		"remaining", remaining.String(),
	)

	return remaining, nil
}
