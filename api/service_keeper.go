package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/venture-fund/api/types"
	fundkeeper "github.com/openalpha/venture-fund/x/fund/keeper"
	fundtypes "github.com/openalpha/venture-fund/x/fund/types"
	positionkeeper "github.com/openalpha/venture-fund/x/position/keeper"
	positiontypes "github.com/openalpha/venture-fund/x/position/types"
	stakeboostkeeper "github.com/openalpha/venture-fund/x/stakeboost/keeper"
	stakeboosttypes "github.com/openalpha/venture-fund/x/stakeboost/types"
)

// KeeperService implements FundService, PositionService, StakeService by
// reading real keeper state, so the REST layer serves the same accounting the
// chain runs instead of the mock recorders.
type KeeperService struct {
	fundKeeper     *fundkeeper.Keeper
	positionKeeper *positionkeeper.Keeper
	stakeKeeper    *stakeboostkeeper.Keeper
	ctx            sdk.Context
	mu             sync.RWMutex
}

// noopBankKeeper satisfies the keepers' bank interface for the standalone API
// process, which has no bank module behind it. Coin movements are accounted in
// keeper state; actual transfers happen on the chain node.
type noopBankKeeper struct{}

func (noopBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return nil
}

func (noopBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return nil
}

// NewKeeperService creates a KeeperService with the three module keepers
// mounted on an in-memory store, wired the same way the app wires them:
// position is the base ledger, stakeboost reads holdings from it, fund
// orchestrates both.
func NewKeeperService() *KeeperService {
	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	fundStoreKey := storetypes.NewKVStoreKey(fundtypes.StoreKey)
	positionStoreKey := storetypes.NewKVStoreKey(positiontypes.StoreKey)
	stakeStoreKey := storetypes.NewKVStoreKey(stakeboosttypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(fundStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(positionStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(stakeStoreKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		panic(fmt.Sprintf("failed to load store: %v", err))
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{
		Time:   time.Now(),
		Height: 1,
	}, false, log.NewNopLogger())

	positionK := positionkeeper.NewKeeper(cdc, positionStoreKey, log.NewNopLogger())
	stakeK := stakeboostkeeper.NewKeeper(
		cdc,
		stakeStoreKey,
		positionK,
		noopBankKeeper{},
		"", // authority
		log.NewNopLogger(),
	)
	fundK := fundkeeper.NewKeeper(
		cdc,
		fundStoreKey,
		positionK,
		stakeK,
		noopBankKeeper{},
		"", // authority
		log.NewNopLogger(),
	)

	return &KeeperService{
		fundKeeper:     fundK,
		positionKeeper: positionK,
		stakeKeeper:    stakeK,
		ctx:            ctx,
	}
}

// ============ FundService Implementation ============

func (s *KeeperService) GetFunds(ctx context.Context) ([]*types.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.fundKeeper.GetAllFunds(s.ctx)
	funds := make([]*types.Fund, 0, len(stored))
	for _, fund := range stored {
		funds = append(funds, s.toAPIFund(fund))
	}
	return funds, nil
}

func (s *KeeperService) GetFund(ctx context.Context, fundID string) (*types.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund := s.fundKeeper.GetFund(s.ctx, fundID)
	if fund == nil {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}
	return s.toAPIFund(fund), nil
}

func (s *KeeperService) GetPayouts(ctx context.Context, fundID string, offset, limit int) (*types.PayoutsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fundKeeper.GetFund(s.ctx, fundID) == nil {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}

	payouts := s.fundKeeper.GetPayouts(s.ctx, fundID)
	total := len(payouts)

	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	page := make([]*types.Payout, 0, end-offset)
	for _, payout := range payouts[offset:end] {
		page = append(page, &types.Payout{
			FundID:          fundID,
			Index:           payout.Index,
			Height:          payout.Height,
			GrossAmount:     payout.GrossAmount.String(),
			FeeAmount:       payout.FeeAmount.String(),
			NetAmount:       payout.NetAmount.String(),
			DiscountApplied: payout.DiscountApplied.String(),
			Timestamp:       payout.Timestamp,
		})
	}

	return &types.PayoutsResponse{Payouts: page, Total: total}, nil
}

func (s *KeeperService) GetEntitlement(ctx context.Context, fundID, account string) (*types.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fundKeeper.GetFund(s.ctx, fundID) == nil {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}

	available := s.fundKeeper.AvailableFunds(s.ctx, fundID, account)
	state := s.fundKeeper.GetWithdrawalState(s.ctx, fundID, account)

	return &types.Entitlement{
		FundID:         fundID,
		Account:        account,
		Available:      available.String(),
		TotalWithdrawn: state.TotalWithdrawn.String(),
		AsOfHeight:     s.ctx.BlockHeight(),
	}, nil
}

func (s *KeeperService) GetHolders(ctx context.Context, fundID string) (*types.HoldersResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fundKeeper.GetFund(s.ctx, fundID) == nil {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}

	holdings := s.positionKeeper.FundHoldings(s.ctx, fundID)
	holders := make([]*types.Holder, 0, len(holdings))
	for _, holding := range holdings {
		holders = append(holders, &types.Holder{
			Account: holding.Account,
			Value:   holding.Value.String(),
		})
	}

	return &types.HoldersResponse{FundID: fundID, Holders: holders}, nil
}

// ============ PositionService Implementation ============

func (s *KeeperService) GetPosition(ctx context.Context, positionID uint64) (*types.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	position := s.positionKeeper.GetPosition(s.ctx, positionID)
	if position == nil {
		return nil, fmt.Errorf("position not found: %d", positionID)
	}
	return toAPIPosition(position), nil
}

func (s *KeeperService) GetAccountPositions(ctx context.Context, account string) ([]*types.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.positionKeeper.GetOwnerPositions(s.ctx, account)
	positions := make([]*types.Position, 0, len(stored))
	for _, position := range stored {
		positions = append(positions, toAPIPosition(position))
	}
	return positions, nil
}

func (s *KeeperService) GetCheckpoints(ctx context.Context, fundID, account string) ([]*types.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.positionKeeper.GetAccountCheckpoints(s.ctx, fundID, account)
	checkpoints := make([]*types.Checkpoint, 0, len(stored))
	for _, checkpoint := range stored {
		checkpoints = append(checkpoints, &types.Checkpoint{
			Height: checkpoint.Height,
			Value:  checkpoint.Value.String(),
		})
	}
	return checkpoints, nil
}

// ============ StakeService Implementation ============

func (s *KeeperService) GetStake(ctx context.Context, fundID, account string) (*types.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stake := s.stakeKeeper.GetStake(s.ctx, fundID, account)
	if stake == nil {
		return nil, fmt.Errorf("stake not found: %s in %s", account, fundID)
	}
	return &types.Stake{
		Staker:   stake.Staker,
		FundID:   stake.FundID,
		Amount:   stake.Amount.String(),
		StakedAt: stake.StakedAt,
	}, nil
}

func (s *KeeperService) GetDiscount(ctx context.Context, fundID, account string) (*types.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// No stake resolves to a zero discount, not an error
	discount := s.stakeKeeper.DiscountOf(s.ctx, account, fundID)
	return &types.Discount{
		FundID:   fundID,
		Account:  account,
		Discount: discount.String(),
	}, nil
}

// ============ Helper Methods ============

func (s *KeeperService) toAPIFund(fund *fundtypes.Fund) *types.Fund {
	return &types.Fund{
		FundID:           fund.FundID,
		Phase:            fund.Phase,
		Denom:            fund.Denom,
		Operator:         fund.Operator,
		Treasury:         fund.Treasury,
		TotalContributed: fund.TotalContributed.String(),
		CumulativeProfit: fund.CumulativeProfit.String(),
		Balance:          fund.Balance.String(),
		EntryFeeRate:     fund.FeeConfig.EntryFeeRate.String(),
		CarryFeeRate:     fund.FeeConfig.CarryFeeRate.String(),
		InvestmentCap:    fund.FeeConfig.InvestmentCap.String(),
		PayoutsCount:     s.fundKeeper.PayoutsCount(s.ctx, fund.FundID),
		CreatedAt:        fund.CreatedAt,
		UpdatedAt:        fund.UpdatedAt,
	}
}

func toAPIPosition(position *positiontypes.Position) *types.Position {
	return &types.Position{
		PositionID: position.PositionID,
		FundID:     position.FundID,
		Owner:      position.Owner,
		Value:      position.Value.String(),
		Parent:     position.Parent,
		Retired:    position.Retired,
		CreatedAt:  position.CreatedAt,
	}
}

// FundKeeper returns the underlying fund keeper for direct access in tests
func (s *KeeperService) FundKeeper() *fundkeeper.Keeper {
	return s.fundKeeper
}

// PositionKeeper returns the underlying position keeper for direct access in
// tests
func (s *KeeperService) PositionKeeper() *positionkeeper.Keeper {
	return s.positionKeeper
}

// StakeKeeper returns the underlying stakeboost keeper for direct access in
// tests
func (s *KeeperService) StakeKeeper() *stakeboostkeeper.Keeper {
	return s.stakeKeeper
}

// GetContext returns the SDK context
func (s *KeeperService) GetContext() sdk.Context {
	return s.ctx
}
