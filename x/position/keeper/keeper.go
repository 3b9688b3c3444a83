package keeper

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/position/types"
)

// Store key prefixes
var (
	PositionKeyPrefix        = []byte{0x01}
	SequenceKey              = []byte{0x02}
	AccountCheckpointPrefix  = []byte{0x03}
	TotalCheckpointPrefix    = []byte{0x04}
	OwnerPositionsKeyPrefix  = []byte{0x05}
)

// Keeper manages the position ledger state
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new position keeper
func NewKeeper(cdc codec.BinaryCodec, storeKey storetypes.StoreKey, logger log.Logger) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		logger:   logger.With("module", "x/position"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Position Records ============

func positionKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(PositionKeyPrefix, bz...)
}

func ownerPositionKey(owner string, id uint64) []byte {
	key := append(OwnerPositionsKeyPrefix, []byte(owner+":")...)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(key, bz...)
}

// SetPosition saves a position and its owner index entry
func (k *Keeper) SetPosition(ctx sdk.Context, position *types.Position) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(position)
	store.Set(positionKey(position.PositionID), bz)
	if !position.Retired {
		store.Set(ownerPositionKey(position.Owner, position.PositionID), []byte{1})
	}
}

// GetPosition retrieves a position by id
func (k *Keeper) GetPosition(ctx sdk.Context, id uint64) *types.Position {
	store := k.GetStore(ctx)
	bz := store.Get(positionKey(id))
	if bz == nil {
		return nil
	}
	var position types.Position
	if err := json.Unmarshal(bz, &position); err != nil {
		return nil
	}
	return &position
}

// GetOwnerPositions returns all live positions owned by an account
func (k *Keeper) GetOwnerPositions(ctx sdk.Context, owner string) []*types.Position {
	store := k.GetStore(ctx)
	prefix := append(OwnerPositionsKeyPrefix, []byte(owner+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var positions []*types.Position
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		id := binary.BigEndian.Uint64(key[len(key)-8:])
		if p := k.GetPosition(ctx, id); p != nil && !p.Retired {
			positions = append(positions, p)
		}
	}
	return positions
}

func (k *Keeper) removeOwnerIndex(ctx sdk.Context, owner string, id uint64) {
	k.GetStore(ctx).Delete(ownerPositionKey(owner, id))
}

// nextPositionID returns the next id from the global sequence
func (k *Keeper) nextPositionID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	next := uint64(1)
	if bz := store.Get(SequenceKey); bz != nil {
		next = binary.BigEndian.Uint64(bz) + 1
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next)
	store.Set(SequenceKey, bz)
	return next
}

// GetFundPositions returns all live positions belonging to a fund, ordered
// by id
func (k *Keeper) GetFundPositions(ctx sdk.Context, fundID string) []*types.Position {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PositionKeyPrefix)
	defer iterator.Close()

	var positions []*types.Position
	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			continue
		}
		if position.FundID != fundID || position.Retired {
			continue
		}
		positions = append(positions, &position)
	}
	return positions
}

// FundHoldings aggregates a fund's live positions by owner. The result is
// sorted by account so iteration order is deterministic across nodes.
func (k *Keeper) FundHoldings(ctx sdk.Context, fundID string) []types.Holding {
	byOwner := make(map[string]math.Int)
	for _, position := range k.GetFundPositions(ctx, fundID) {
		value, ok := byOwner[position.Owner]
		if !ok {
			value = math.ZeroInt()
		}
		byOwner[position.Owner] = value.Add(position.Value)
	}

	accounts := make([]string, 0, len(byOwner))
	for account := range byOwner {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	holdings := make([]types.Holding, 0, len(accounts))
	for _, account := range accounts {
		holdings = append(holdings, types.Holding{Account: account, Value: byOwner[account]})
	}
	return holdings
}
