package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/position/types"
)

// Checkpoints are append-only (height, value) entries keyed by big-endian
// height so the store orders each account's history chronologically. Writing
// twice at one height overwrites the earlier entry, which coalesces multiple
// balance changes inside a single block into the block's final value.
//
// Point-in-time reads seek backwards from the query height to the most
// recent entry at or below it; a height before the first checkpoint reads as
// zero.

func accountCheckpointKey(fundID, account string, height int64) []byte {
	key := append(AccountCheckpointPrefix, []byte(fundID+":"+account+":")...)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(height))
	return append(key, bz...)
}

func totalCheckpointKey(fundID string, height int64) []byte {
	key := append(TotalCheckpointPrefix, []byte(fundID+":")...)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(height))
	return append(key, bz...)
}

// writeAccountCheckpoint records an account's fund holding as of the current
// block height.
func (k *Keeper) writeAccountCheckpoint(ctx sdk.Context, fundID, account string, value math.Int) {
	store := k.GetStore(ctx)
	cp := types.Checkpoint{Height: ctx.BlockHeight(), Value: value}
	bz, _ := json.Marshal(cp)
	store.Set(accountCheckpointKey(fundID, account, cp.Height), bz)
}

// writeTotalCheckpoint records the fund's total live position value as of the
// current block height.
func (k *Keeper) writeTotalCheckpoint(ctx sdk.Context, fundID string, value math.Int) {
	store := k.GetStore(ctx)
	cp := types.Checkpoint{Height: ctx.BlockHeight(), Value: value}
	bz, _ := json.Marshal(cp)
	store.Set(totalCheckpointKey(fundID, cp.Height), bz)
}

// checkpointAt returns the value of the most recent checkpoint at or below
// height under the given key prefix, or zero when none exists.
func (k *Keeper) checkpointAt(ctx sdk.Context, prefix []byte, height int64) math.Int {
	store := k.GetStore(ctx)

	// End bound is exclusive, so seek to height+1.
	end := make([]byte, 8)
	binary.BigEndian.PutUint64(end, uint64(height+1))
	iterator := store.ReverseIterator(prefix, append(append([]byte{}, prefix...), end...))
	defer iterator.Close()

	if !iterator.Valid() {
		return math.ZeroInt()
	}
	var cp types.Checkpoint
	if err := json.Unmarshal(iterator.Value(), &cp); err != nil {
		return math.ZeroInt()
	}
	return cp.Value
}

// AccountValueAt returns an account's fund holding at a historical height
func (k *Keeper) AccountValueAt(ctx sdk.Context, fundID, account string, height int64) math.Int {
	prefix := append(AccountCheckpointPrefix, []byte(fundID+":"+account+":")...)
	return k.checkpointAt(ctx, prefix, height)
}

// TotalValueAt returns the fund's total position value at a historical height
func (k *Keeper) TotalValueAt(ctx sdk.Context, fundID string, height int64) math.Int {
	prefix := append(TotalCheckpointPrefix, []byte(fundID+":")...)
	return k.checkpointAt(ctx, prefix, height)
}

// ParticipationAt returns (accountValue, totalValue) for a fund at a
// historical height. Pure with respect to state; both sides come from the
// same height so callers never mix data across heights.
func (k *Keeper) ParticipationAt(ctx sdk.Context, fundID, account string, height int64) (math.Int, math.Int) {
	return k.AccountValueAt(ctx, fundID, account, height), k.TotalValueAt(ctx, fundID, height)
}

// GetAccountCheckpoints returns an account's full checkpoint history, oldest
// first. Used by queries and the off-chain indexer.
func (k *Keeper) GetAccountCheckpoints(ctx sdk.Context, fundID, account string) []types.Checkpoint {
	store := k.GetStore(ctx)
	prefix := append(AccountCheckpointPrefix, []byte(fundID+":"+account+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var checkpoints []types.Checkpoint
	for ; iterator.Valid(); iterator.Next() {
		var cp types.Checkpoint
		if err := json.Unmarshal(iterator.Value(), &cp); err != nil {
			continue
		}
		checkpoints = append(checkpoints, cp)
	}
	return checkpoints
}
