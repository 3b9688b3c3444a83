package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/position/types"
)

// Mint creates a position with the given gross value and checkpoints the
// owner's holding and the fund total at the current height. Called by the
// fund module on contribution; there is no user-facing mint message.
func (k *Keeper) Mint(ctx sdk.Context, fundID, owner string, value math.Int) (uint64, error) {
	if !value.IsPositive() {
		return 0, types.ErrInvalidValue
	}

	id := k.nextPositionID(ctx)
	position := types.NewPosition(id, fundID, owner, value, 0)
	k.SetPosition(ctx, position)

	holding := k.AccountValueAt(ctx, fundID, owner, ctx.BlockHeight())
	k.writeAccountCheckpoint(ctx, fundID, owner, holding.Add(value))

	total := k.TotalValueAt(ctx, fundID, ctx.BlockHeight())
	k.writeTotalCheckpoint(ctx, fundID, total.Add(value))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"position_minted",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("position_id", strconv.FormatUint(id, 10)),
			sdk.NewAttribute("value", value.String()),
		),
	)

	k.logger.Info("Position minted",
		"fund_id", fundID,
		"owner", owner,
		"position_id", id,
		"value", value.String(),
	)

	return id, nil
}

// ValueOf returns the gross value recorded on a position
func (k *Keeper) ValueOf(ctx sdk.Context, positionID uint64) (math.Int, error) {
	position := k.GetPosition(ctx, positionID)
	if position == nil {
		return math.ZeroInt(), types.ErrPositionNotFound
	}
	return position.Value, nil
}

// Transfer moves a position between owners. Entitlement to payouts recorded
// before this height stays with the old owner: only checkpoints from this
// height onward reflect the new ownership.
func (k *Keeper) Transfer(ctx sdk.Context, positionID uint64, from, to string) error {
	position := k.GetPosition(ctx, positionID)
	if position == nil {
		return types.ErrPositionNotFound
	}
	if position.Retired {
		return types.ErrPositionRetired
	}
	if position.Owner != from {
		return types.ErrNotOwner
	}
	if from == to {
		return nil
	}

	k.removeOwnerIndex(ctx, from, positionID)
	position.Owner = to
	k.SetPosition(ctx, position)

	height := ctx.BlockHeight()
	fromHolding := k.AccountValueAt(ctx, position.FundID, from, height)
	k.writeAccountCheckpoint(ctx, position.FundID, from, fromHolding.Sub(position.Value))

	toHolding := k.AccountValueAt(ctx, position.FundID, to, height)
	k.writeAccountCheckpoint(ctx, position.FundID, to, toHolding.Add(position.Value))

	// Total participation is unchanged by a transfer.

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"position_transferred",
			sdk.NewAttribute("fund_id", position.FundID),
			sdk.NewAttribute("position_id", strconv.FormatUint(positionID, 10)),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("value", position.Value.String()),
		),
	)

	k.logger.Info("Position transferred",
		"fund_id", position.FundID,
		"position_id", positionID,
		"from", from,
		"to", to,
	)

	return nil
}

// Split retires a position and mints children to the same owner with the
// given values, which must sum to the parent's value. Holdings are unchanged,
// so no checkpoint is written: entitlement before and after the split is
// identical for every payout height.
func (k *Keeper) Split(ctx sdk.Context, positionID uint64, owner string, values []math.Int) ([]uint64, error) {
	position := k.GetPosition(ctx, positionID)
	if position == nil {
		return nil, types.ErrPositionNotFound
	}
	if position.Retired {
		return nil, types.ErrPositionRetired
	}
	if position.Owner != owner {
		return nil, types.ErrNotOwner
	}
	if len(values) < 2 {
		return nil, types.ErrSplitMismatch
	}

	sum := math.ZeroInt()
	for _, v := range values {
		if !v.IsPositive() {
			return nil, types.ErrInvalidValue
		}
		sum = sum.Add(v)
	}
	if !sum.Equal(position.Value) {
		return nil, types.ErrSplitMismatch
	}

	k.removeOwnerIndex(ctx, owner, positionID)
	position.Retired = true
	k.SetPosition(ctx, position)

	ids := make([]uint64, 0, len(values))
	for _, v := range values {
		id := k.nextPositionID(ctx)
		child := types.NewPosition(id, position.FundID, owner, v, positionID)
		k.SetPosition(ctx, child)
		ids = append(ids, id)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"position_split",
			sdk.NewAttribute("fund_id", position.FundID),
			sdk.NewAttribute("position_id", strconv.FormatUint(positionID, 10)),
			sdk.NewAttribute("children", strconv.Itoa(len(ids))),
		),
	)

	k.logger.Info("Position split",
		"fund_id", position.FundID,
		"position_id", positionID,
		"children", len(ids),
	)

	return ids, nil
}
