package index

import (
	"sync"

	"github.com/google/btree"

	"github.com/openalpha/venture-fund/api/types"
)

const btreeDegree = 32 // B-tree degree, affects node size and cache efficiency

// payoutItem wraps a payout for use in btree, ordered by (fund, index)
// Implements btree.Item interface
type payoutItem struct {
	fundID string
	index  uint64
	payout *types.Payout
}

// Less implements btree.Item interface - ascending by fund then payout index
func (a *payoutItem) Less(b btree.Item) bool {
	o := b.(*payoutItem)
	if a.fundID != o.fundID {
		return a.fundID < o.fundID
	}
	return a.index < o.index
}

// PayoutIndex is an in-memory payout history index using a B-tree for
// O(log n) insertion and efficient paginated range queries per fund.
type PayoutIndex struct {
	tree   *btree.BTree
	counts map[string]int
	mu     sync.RWMutex
}

// NewPayoutIndex creates an empty payout index
func NewPayoutIndex() *PayoutIndex {
	return &PayoutIndex{
		tree:   btree.New(btreeDegree),
		counts: make(map[string]int),
	}
}

// Add inserts or replaces a payout record - O(log n)
func (idx *PayoutIndex) Add(payout *types.Payout) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	item := &payoutItem{fundID: payout.FundID, index: payout.Index, payout: payout}
	if prev := idx.tree.ReplaceOrInsert(item); prev == nil {
		idx.counts[payout.FundID]++
	}
}

// Get returns the payout with the given fund-local index, or nil - O(log n)
func (idx *PayoutIndex) Get(fundID string, index uint64) *types.Payout {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item := idx.tree.Get(&payoutItem{fundID: fundID, index: index})
	if item == nil {
		return nil
	}
	return item.(*payoutItem).payout
}

// Count returns the number of payouts recorded for a fund
func (idx *PayoutIndex) Count(fundID string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.counts[fundID]
}

// Range returns a page of a fund's payouts in index order - O(log n + k)
func (idx *PayoutIndex) Range(fundID string, offset, limit int) []*types.Payout {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	payouts := make([]*types.Payout, 0, limit)
	skipped := 0
	idx.tree.AscendGreaterOrEqual(&payoutItem{fundID: fundID, index: 0}, func(item btree.Item) bool {
		pi := item.(*payoutItem)
		if pi.fundID != fundID {
			return false
		}
		if skipped < offset {
			skipped++
			return true
		}
		if limit > 0 && len(payouts) >= limit {
			return false
		}
		payouts = append(payouts, pi.payout)
		return true
	})
	return payouts
}

// Latest returns the most recent payout for a fund, or nil - O(log n)
func (idx *PayoutIndex) Latest(fundID string) *types.Payout {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var latest *types.Payout
	// Descend from just past the fund's key space to its first entry
	idx.tree.DescendLessOrEqual(&payoutItem{fundID: fundID, index: ^uint64(0)}, func(item btree.Item) bool {
		pi := item.(*payoutItem)
		if pi.fundID != fundID {
			return false
		}
		latest = pi.payout
		return false
	})
	return latest
}

// SinceHeight returns a fund's payouts recorded at or after the given
// height, in index order.
func (idx *PayoutIndex) SinceHeight(fundID string, height int64) []*types.Payout {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var payouts []*types.Payout
	idx.tree.AscendGreaterOrEqual(&payoutItem{fundID: fundID, index: 0}, func(item btree.Item) bool {
		pi := item.(*payoutItem)
		if pi.fundID != fundID {
			return false
		}
		if pi.payout.Height >= height {
			payouts = append(payouts, pi.payout)
		}
		return true
	})
	return payouts
}

// Len returns the total number of payouts across all funds
func (idx *PayoutIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}
