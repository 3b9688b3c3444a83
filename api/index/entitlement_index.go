package index

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/huandu/skiplist"

	"github.com/openalpha/venture-fund/api/types"
)

// entitlementKey orders entries by available amount descending, with the
// account as a tiebreak so keys are unique per holder.
type entitlementKey struct {
	available math.Int
	account   string
}

// entitlementKeyDesc is a comparator for descending entitlement order
type entitlementKeyDesc struct{}

func (k entitlementKeyDesc) Compare(lhs, rhs interface{}) int {
	l := lhs.(entitlementKey)
	r := rhs.(entitlementKey)
	// Reverse order for descending
	if l.available.GT(r.available) {
		return -1
	}
	if l.available.LT(r.available) {
		return 1
	}
	if l.account < r.account {
		return -1
	}
	if l.account > r.account {
		return 1
	}
	return 0
}

func (k entitlementKeyDesc) CalcScore(key interface{}) float64 {
	f, _ := math.LegacyNewDecFromInt(key.(entitlementKey).available).Float64()
	return -f // Negative for descending
}

// fundEntitlements is one fund's leaderboard plus a reverse lookup so an
// account's entry can be replaced when its entitlement changes.
type fundEntitlements struct {
	list *skiplist.SkipList
	keys map[string]entitlementKey
}

// EntitlementIndex ranks each fund's holders by withdrawable entitlement
// using skip lists for O(log n) updates and ordered traversal.
type EntitlementIndex struct {
	funds map[string]*fundEntitlements
	mu    sync.RWMutex
}

// NewEntitlementIndex creates an empty entitlement index
func NewEntitlementIndex() *EntitlementIndex {
	return &EntitlementIndex{
		funds: make(map[string]*fundEntitlements),
	}
}

func (idx *EntitlementIndex) fund(fundID string) *fundEntitlements {
	fe, ok := idx.funds[fundID]
	if !ok {
		fe = &fundEntitlements{
			list: skiplist.New(entitlementKeyDesc{}),
			keys: make(map[string]entitlementKey),
		}
		idx.funds[fundID] = fe
	}
	return fe
}

// Upsert records an account's current entitlement - O(log n)
func (idx *EntitlementIndex) Upsert(ent *types.Entitlement) {
	available, ok := math.NewIntFromString(ent.Available)
	if !ok {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	fe := idx.fund(ent.FundID)
	if prev, ok := fe.keys[ent.Account]; ok {
		fe.list.Remove(prev)
	}
	key := entitlementKey{available: available, account: ent.Account}
	fe.list.Set(key, ent)
	fe.keys[ent.Account] = key
}

// Remove drops an account's entry, if present - O(log n)
func (idx *EntitlementIndex) Remove(fundID, account string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	fe, ok := idx.funds[fundID]
	if !ok {
		return
	}
	if key, ok := fe.keys[account]; ok {
		fe.list.Remove(key)
		delete(fe.keys, account)
	}
}

// Get returns an account's entitlement, or nil - O(log n)
func (idx *EntitlementIndex) Get(fundID, account string) *types.Entitlement {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	fe, ok := idx.funds[fundID]
	if !ok {
		return nil
	}
	key, ok := fe.keys[account]
	if !ok {
		return nil
	}
	elem := fe.list.Get(key)
	if elem == nil {
		return nil
	}
	return elem.Value.(*types.Entitlement)
}

// Top returns a fund's n largest entitlements, largest first
func (idx *EntitlementIndex) Top(fundID string, n int) []*types.Entitlement {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	fe, ok := idx.funds[fundID]
	if !ok {
		return nil
	}

	ents := make([]*types.Entitlement, 0, n)
	for elem := fe.list.Front(); elem != nil && len(ents) < n; elem = elem.Next() {
		ents = append(ents, elem.Value.(*types.Entitlement))
	}
	return ents
}

// Count returns the number of accounts tracked for a fund
func (idx *EntitlementIndex) Count(fundID string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	fe, ok := idx.funds[fundID]
	if !ok {
		return 0
	}
	return fe.list.Len()
}
