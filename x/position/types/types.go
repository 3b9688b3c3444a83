package types

import (
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "position"
	StoreKey   = ModuleName
)

// Position is a transferable record of a gross contribution to a fund. It
// may be split into children whose values sum to the parent's value; the
// parent is then retired.
type Position struct {
	PositionID uint64   `json:"position_id"`
	FundID     string   `json:"fund_id"`
	Owner      string   `json:"owner"`
	Value      math.Int `json:"value"`
	// Parent is the retired position this one was split from, 0 for minted
	// positions.
	Parent  uint64 `json:"parent,omitempty"`
	Retired bool   `json:"retired,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// NewPosition creates a live position record
func NewPosition(id uint64, fundID, owner string, value math.Int, parent uint64) *Position {
	return &Position{
		PositionID: id,
		FundID:     fundID,
		Owner:      owner,
		Value:      value,
		Parent:     parent,
		CreatedAt:  time.Now().Unix(),
	}
}

// Checkpoint is one (height, value) entry in an account's append-only
// balance history. Point-in-time participation queries binary-search these.
type Checkpoint struct {
	Height int64    `json:"height"`
	Value  math.Int `json:"value"`
}

// Holding is an account's aggregate live position value in a fund
type Holding struct {
	Account string   `json:"account"`
	Value   math.Int `json:"value"`
}
