package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/x/fund/types"
)

// Store key prefixes
var (
	FundKeyPrefix            = []byte{0x01}
	PayoutKeyPrefix          = []byte{0x02}
	PayoutCountKeyPrefix     = []byte{0x03}
	WithdrawalStateKeyPrefix = []byte{0x04}
)

// PositionKeeper defines the expected interface for the position ledger
type PositionKeeper interface {
	Mint(ctx sdk.Context, fundID, owner string, value math.Int) (uint64, error)
	ValueOf(ctx sdk.Context, positionID uint64) (math.Int, error)
	ParticipationAt(ctx sdk.Context, fundID, account string, height int64) (math.Int, math.Int)
}

// DiscountKeeper defines the expected interface for the staking discount provider
type DiscountKeeper interface {
	CurrentDiscount(ctx sdk.Context, fundID string) math.LegacyDec
	DiscountOf(ctx sdk.Context, account, fundID string) math.LegacyDec
}

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper manages the fund module state
type Keeper struct {
	cdc            codec.BinaryCodec
	storeKey       storetypes.StoreKey
	positionKeeper PositionKeeper
	discountKeeper DiscountKeeper
	bankKeeper     BankKeeper
	logger         log.Logger
	authority      string
}

// NewKeeper creates a new fund keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	positionKeeper PositionKeeper,
	discountKeeper DiscountKeeper,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		positionKeeper: positionKeeper,
		discountKeeper: discountKeeper,
		bankKeeper:     bankKeeper,
		authority:      authority,
		logger:         logger.With("module", "x/fund"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Fund Operations ============

func fundKey(fundID string) []byte {
	return append(FundKeyPrefix, []byte(fundID)...)
}

// SetFund saves a fund to the store
func (k *Keeper) SetFund(ctx sdk.Context, fund *types.Fund) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(fund)
	store.Set(fundKey(fund.FundID), bz)
}

// GetFund retrieves a fund from the store
func (k *Keeper) GetFund(ctx sdk.Context, fundID string) *types.Fund {
	store := k.GetStore(ctx)
	bz := store.Get(fundKey(fundID))
	if bz == nil {
		return nil
	}
	var fund types.Fund
	if err := json.Unmarshal(bz, &fund); err != nil {
		return nil
	}
	return &fund
}

// GetAllFunds returns all funds
func (k *Keeper) GetAllFunds(ctx sdk.Context) []*types.Fund {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, FundKeyPrefix)
	defer iterator.Close()

	var funds []*types.Fund
	for ; iterator.Valid(); iterator.Next() {
		var fund types.Fund
		if err := json.Unmarshal(iterator.Value(), &fund); err != nil {
			continue
		}
		funds = append(funds, &fund)
	}
	return funds
}

// ============ Payout Operations ============

// payoutKey orders payouts by big-endian index so iteration yields them
// oldest first.
func payoutKey(fundID string, index uint64) []byte {
	key := append(PayoutKeyPrefix, []byte(fundID+":")...)
	idx := make([]byte, 8)
	binary.BigEndian.PutUint64(idx, index)
	return append(key, idx...)
}

func payoutCountKey(fundID string) []byte {
	return append(PayoutCountKeyPrefix, []byte(fundID)...)
}

// AppendPayout stores a payout at the next index and bumps the counter.
// The caller assigns Index; it must equal the current count.
func (k *Keeper) AppendPayout(ctx sdk.Context, fundID string, payout *types.Payout) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(payout)
	store.Set(payoutKey(fundID, payout.Index), bz)

	count := make([]byte, 8)
	binary.BigEndian.PutUint64(count, payout.Index+1)
	store.Set(payoutCountKey(fundID), count)
}

// GetPayout retrieves one payout by index
func (k *Keeper) GetPayout(ctx sdk.Context, fundID string, index uint64) *types.Payout {
	store := k.GetStore(ctx)
	bz := store.Get(payoutKey(fundID, index))
	if bz == nil {
		return nil
	}
	var payout types.Payout
	if err := json.Unmarshal(bz, &payout); err != nil {
		return nil
	}
	return &payout
}

// PayoutsCount returns the number of recorded payouts for a fund
func (k *Keeper) PayoutsCount(ctx sdk.Context, fundID string) uint64 {
	store := k.GetStore(ctx)
	bz := store.Get(payoutCountKey(fundID))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// GetPayouts returns all payouts for a fund, oldest first
func (k *Keeper) GetPayouts(ctx sdk.Context, fundID string) []*types.Payout {
	store := k.GetStore(ctx)
	prefix := append(PayoutKeyPrefix, []byte(fundID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var payouts []*types.Payout
	for ; iterator.Valid(); iterator.Next() {
		var payout types.Payout
		if err := json.Unmarshal(iterator.Value(), &payout); err != nil {
			continue
		}
		payouts = append(payouts, &payout)
	}
	return payouts
}

// ============ Withdrawal State Operations ============

func withdrawalStateKey(fundID, account string) []byte {
	return append(WithdrawalStateKeyPrefix, []byte(fundID+":"+account)...)
}

// SetWithdrawalState saves a participant's withdrawal state
func (k *Keeper) SetWithdrawalState(ctx sdk.Context, state *types.WithdrawalState) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(state)
	store.Set(withdrawalStateKey(state.FundID, state.Account), bz)
}

// GetWithdrawalState retrieves a participant's withdrawal state, returning a
// zeroed record when none exists yet.
func (k *Keeper) GetWithdrawalState(ctx sdk.Context, fundID, account string) *types.WithdrawalState {
	store := k.GetStore(ctx)
	bz := store.Get(withdrawalStateKey(fundID, account))
	if bz == nil {
		return types.NewWithdrawalState(fundID, account)
	}
	var state types.WithdrawalState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.NewWithdrawalState(fundID, account)
	}
	return &state
}
