package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cosmossdk.io/math"

	"github.com/openalpha/venture-fund/api/index"
	"github.com/openalpha/venture-fund/api/types"
)

// MockService implements all service interfaces with in-memory data.
// It starts empty; records are fed in through the Record* methods, so
// everything served reflects what was actually recorded.
type MockService struct {
	funds       map[string]*types.Fund
	positions   map[uint64]*types.Position
	checkpoints map[string][]*types.Checkpoint // key: fundID:account
	stakes      map[string]*types.Stake        // key: fundID:account
	discounts   map[string]*types.Discount     // key: fundID:account

	payouts      *index.PayoutIndex
	entitlements *index.EntitlementIndex

	mu sync.RWMutex
}

// NewMockService creates a new mock service
func NewMockService() *MockService {
	return &MockService{
		funds:        make(map[string]*types.Fund),
		positions:    make(map[uint64]*types.Position),
		checkpoints:  make(map[string][]*types.Checkpoint),
		stakes:       make(map[string]*types.Stake),
		discounts:    make(map[string]*types.Discount),
		payouts:      index.NewPayoutIndex(),
		entitlements: index.NewEntitlementIndex(),
	}
}

func holderKey(fundID, account string) string {
	return fundID + ":" + account
}

// ============ Recorders ============

// RecordFund inserts or replaces a fund snapshot
func (ms *MockService) RecordFund(fund *types.Fund) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	fund.UpdatedAt = nowMillis()
	ms.funds[fund.FundID] = fund
}

// RecordPosition inserts or replaces a position
func (ms *MockService) RecordPosition(pos *types.Position) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.positions[pos.PositionID] = pos
}

// RecordCheckpoint appends one height/value entry to an account's history
func (ms *MockService) RecordCheckpoint(fundID, account string, cp *types.Checkpoint) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := holderKey(fundID, account)
	cps := ms.checkpoints[key]
	// Same-height entries overwrite; heights only ever grow
	if n := len(cps); n > 0 && cps[n-1].Height == cp.Height {
		cps[n-1] = cp
	} else {
		cps = append(cps, cp)
	}
	ms.checkpoints[key] = cps
}

// RecordPayout adds a payout to the history index
func (ms *MockService) RecordPayout(payout *types.Payout) {
	ms.payouts.Add(payout)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if fund, ok := ms.funds[payout.FundID]; ok {
		fund.PayoutsCount = payout.Index + 1
		fund.UpdatedAt = nowMillis()
	}
}

// RecordEntitlement updates an account's withdrawable entitlement
func (ms *MockService) RecordEntitlement(ent *types.Entitlement) {
	ms.entitlements.Upsert(ent)
}

// RecordStake inserts or replaces a boost stake
func (ms *MockService) RecordStake(stake *types.Stake) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.stakes[holderKey(stake.FundID, stake.Staker)] = stake
}

// RecordDiscount updates an account's current discount
func (ms *MockService) RecordDiscount(discount *types.Discount) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.discounts[holderKey(discount.FundID, discount.Account)] = discount
}

// ============ FundService Implementation ============

func (ms *MockService) GetFunds(ctx context.Context) ([]*types.Fund, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	funds := make([]*types.Fund, 0, len(ms.funds))
	for _, fund := range ms.funds {
		funds = append(funds, fund)
	}
	sort.Slice(funds, func(i, j int) bool { return funds[i].FundID < funds[j].FundID })
	return funds, nil
}

func (ms *MockService) GetFund(ctx context.Context, fundID string) (*types.Fund, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	fund, ok := ms.funds[fundID]
	if !ok {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}
	return fund, nil
}

func (ms *MockService) GetPayouts(ctx context.Context, fundID string, offset, limit int) (*types.PayoutsResponse, error) {
	ms.mu.RLock()
	_, ok := ms.funds[fundID]
	ms.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}

	return &types.PayoutsResponse{
		Payouts: ms.payouts.Range(fundID, offset, limit),
		Total:   ms.payouts.Count(fundID),
	}, nil
}

func (ms *MockService) GetEntitlement(ctx context.Context, fundID, account string) (*types.Entitlement, error) {
	ent := ms.entitlements.Get(fundID, account)
	if ent == nil {
		return nil, fmt.Errorf("entitlement not found: %s in %s", account, fundID)
	}
	return ent, nil
}

func (ms *MockService) GetHolders(ctx context.Context, fundID string) (*types.HoldersResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if _, ok := ms.funds[fundID]; !ok {
		return nil, fmt.Errorf("fund not found: %s", fundID)
	}

	totals := make(map[string]math.Int)
	for _, pos := range ms.positions {
		if pos.FundID != fundID || pos.Retired {
			continue
		}
		value, ok := math.NewIntFromString(pos.Value)
		if !ok {
			continue
		}
		if total, ok := totals[pos.Owner]; ok {
			totals[pos.Owner] = total.Add(value)
		} else {
			totals[pos.Owner] = value
		}
	}

	accounts := make([]string, 0, len(totals))
	for account := range totals {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	holders := make([]*types.Holder, 0, len(accounts))
	for _, account := range accounts {
		holders = append(holders, &types.Holder{
			Account: account,
			Value:   totals[account].String(),
		})
	}

	return &types.HoldersResponse{FundID: fundID, Holders: holders}, nil
}

// ============ PositionService Implementation ============

func (ms *MockService) GetPosition(ctx context.Context, positionID uint64) (*types.Position, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pos, ok := ms.positions[positionID]
	if !ok {
		return nil, fmt.Errorf("position not found: %d", positionID)
	}
	return pos, nil
}

func (ms *MockService) GetAccountPositions(ctx context.Context, account string) ([]*types.Position, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var positions []*types.Position
	for _, pos := range ms.positions {
		if pos.Retired {
			continue
		}
		if account == "" || pos.Owner == account {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].PositionID < positions[j].PositionID
	})
	return positions, nil
}

func (ms *MockService) GetCheckpoints(ctx context.Context, fundID, account string) ([]*types.Checkpoint, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.checkpoints[holderKey(fundID, account)], nil
}

// ============ StakeService Implementation ============

func (ms *MockService) GetStake(ctx context.Context, fundID, account string) (*types.Stake, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	stake, ok := ms.stakes[holderKey(fundID, account)]
	if !ok {
		return nil, fmt.Errorf("stake not found: %s in %s", account, fundID)
	}
	return stake, nil
}

func (ms *MockService) GetDiscount(ctx context.Context, fundID, account string) (*types.Discount, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	discount, ok := ms.discounts[holderKey(fundID, account)]
	if !ok {
		// No stake means no discount, not an error
		return &types.Discount{
			FundID:   fundID,
			Account:  account,
			Discount: "0.000000000000000000",
		}, nil
	}
	return discount, nil
}

// TopEntitlements returns a fund's n largest entitlements, largest first
func (ms *MockService) TopEntitlements(fundID string, n int) []*types.Entitlement {
	return ms.entitlements.Top(fundID, n)
}
