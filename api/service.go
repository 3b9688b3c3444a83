package api

import (
	"github.com/openalpha/venture-fund/api/types"
)

// Re-export types for convenience
type (
	Fund            = types.Fund
	Payout          = types.Payout
	Entitlement     = types.Entitlement
	Position        = types.Position
	Checkpoint      = types.Checkpoint
	Stake           = types.Stake
	Discount        = types.Discount
	PayoutsResponse = types.PayoutsResponse
	HoldersResponse = types.HoldersResponse
	Holder          = types.Holder
	FundService     = types.FundService
	PositionService = types.PositionService
	StakeService    = types.StakeService
)

// nowMillis returns current timestamp in milliseconds
func nowMillis() int64 {
	return types.NowMillis()
}
