package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	positiontypes "github.com/openalpha/venture-fund/x/position/types"
	"github.com/openalpha/venture-fund/x/stakeboost/types"
)

// Store key prefixes
var (
	StakeKeyPrefix    = []byte{0x01}
	DiscountConfigKey = []byte{0x02}
)

// PositionKeeper defines the expected interface for the position ledger
type PositionKeeper interface {
	FundHoldings(ctx sdk.Context, fundID string) []positiontypes.Holding
}

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper manages the stakeboost module state
type Keeper struct {
	cdc            codec.BinaryCodec
	storeKey       storetypes.StoreKey
	positionKeeper PositionKeeper
	bankKeeper     BankKeeper
	logger         log.Logger
	authority      string
}

// NewKeeper creates a new stakeboost keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	positionKeeper PositionKeeper,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		positionKeeper: positionKeeper,
		bankKeeper:     bankKeeper,
		authority:      authority,
		logger:         logger.With("module", "x/stakeboost"),
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

// ============ Stake Records ============

func stakeKey(fundID, staker string) []byte {
	return append(StakeKeyPrefix, []byte(fundID+":"+staker)...)
}

// SetStake saves a stake record
func (k *Keeper) SetStake(ctx sdk.Context, stake *types.Stake) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(stake)
	store.Set(stakeKey(stake.FundID, stake.Staker), bz)
}

// GetStake retrieves an account's stake for a fund
func (k *Keeper) GetStake(ctx sdk.Context, fundID, staker string) *types.Stake {
	store := k.GetStore(ctx)
	bz := store.Get(stakeKey(fundID, staker))
	if bz == nil {
		return nil
	}
	var stake types.Stake
	if err := json.Unmarshal(bz, &stake); err != nil {
		return nil
	}
	return &stake
}

func (k *Keeper) deleteStake(ctx sdk.Context, fundID, staker string) {
	k.GetStore(ctx).Delete(stakeKey(fundID, staker))
}

// GetFundStakes returns all stakes for a fund
func (k *Keeper) GetFundStakes(ctx sdk.Context, fundID string) []*types.Stake {
	store := k.GetStore(ctx)
	prefix := append(StakeKeyPrefix, []byte(fundID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var stakes []*types.Stake
	for ; iterator.Valid(); iterator.Next() {
		var stake types.Stake
		if err := json.Unmarshal(iterator.Value(), &stake); err != nil {
			continue
		}
		stakes = append(stakes, &stake)
	}
	return stakes
}

// ============ Discount Config ============

// SetDiscountConfig replaces the discount configuration
func (k *Keeper) SetDiscountConfig(ctx sdk.Context, config types.DiscountConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(config)
	store.Set(DiscountConfigKey, bz)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConfigChanged,
			sdk.NewAttribute(types.AttributeKeyMaxDiscount, config.MaxDiscount.String()),
		),
	)
	return nil
}

// GetDiscountConfig returns the stored config, falling back to defaults
func (k *Keeper) GetDiscountConfig(ctx sdk.Context) types.DiscountConfig {
	store := k.GetStore(ctx)
	bz := store.Get(DiscountConfigKey)
	if bz == nil {
		return types.DefaultDiscountConfig()
	}
	var config types.DiscountConfig
	if err := json.Unmarshal(bz, &config); err != nil {
		return types.DefaultDiscountConfig()
	}
	return config
}
