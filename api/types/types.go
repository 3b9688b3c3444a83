package types

import (
	"context"
	"time"
)

// Fund represents a fund in the API response
type Fund struct {
	FundID           string `json:"fund_id"`
	Phase            string `json:"phase"`
	Denom            string `json:"denom"`
	Operator         string `json:"operator"`
	Treasury         string `json:"treasury"`
	TotalContributed string `json:"total_contributed"`
	CumulativeProfit string `json:"cumulative_profit"`
	Balance          string `json:"balance"`
	EntryFeeRate     string `json:"entry_fee_rate"`
	CarryFeeRate     string `json:"carry_fee_rate"`
	InvestmentCap    string `json:"investment_cap"`
	PayoutsCount     uint64 `json:"payouts_count"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// Payout represents a recorded profit distribution in the API response
type Payout struct {
	FundID          string `json:"fund_id"`
	Index           uint64 `json:"index"`
	Height          int64  `json:"height"`
	GrossAmount     string `json:"gross_amount"`
	FeeAmount       string `json:"fee_amount"`
	NetAmount       string `json:"net_amount"`
	DiscountApplied string `json:"discount_applied"`
	Timestamp       int64  `json:"timestamp"`
}

// Entitlement represents an account's withdrawable entitlement
type Entitlement struct {
	FundID         string `json:"fund_id"`
	Account        string `json:"account"`
	Available      string `json:"available"`
	TotalWithdrawn string `json:"total_withdrawn"`
	AsOfHeight     int64  `json:"as_of_height"`
}

// Position represents a fund position in the API response
type Position struct {
	PositionID uint64 `json:"position_id"`
	FundID     string `json:"fund_id"`
	Owner      string `json:"owner"`
	Value      string `json:"value"`
	Parent     uint64 `json:"parent,omitempty"`
	Retired    bool   `json:"retired,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

// Checkpoint represents one height/value entry of an account's history
type Checkpoint struct {
	Height int64  `json:"height"`
	Value  string `json:"value"`
}

// Stake represents an account's boost stake in the API response
type Stake struct {
	Staker   string `json:"staker"`
	FundID   string `json:"fund_id"`
	Amount   string `json:"amount"`
	StakedAt int64  `json:"staked_at"`
}

// Discount represents an account's current carry fee discount
type Discount struct {
	FundID   string `json:"fund_id"`
	Account  string `json:"account"`
	Discount string `json:"discount"`
}

// PayoutsResponse is a page of a fund's payout history
type PayoutsResponse struct {
	Payouts []*Payout `json:"payouts"`
	Total   int       `json:"total"`
}

// HoldersResponse lists a fund's current holders and aggregate values
type HoldersResponse struct {
	FundID  string    `json:"fund_id"`
	Holders []*Holder `json:"holders"`
}

// Holder is one account's aggregate live position value in a fund
type Holder struct {
	Account string `json:"account"`
	Value   string `json:"value"`
}

// FundService defines the interface for fund data
type FundService interface {
	GetFunds(ctx context.Context) ([]*Fund, error)
	GetFund(ctx context.Context, fundID string) (*Fund, error)
	GetPayouts(ctx context.Context, fundID string, offset, limit int) (*PayoutsResponse, error)
	GetEntitlement(ctx context.Context, fundID, account string) (*Entitlement, error)
	GetHolders(ctx context.Context, fundID string) (*HoldersResponse, error)
}

// PositionService defines the interface for position data
type PositionService interface {
	GetPosition(ctx context.Context, positionID uint64) (*Position, error)
	GetAccountPositions(ctx context.Context, account string) ([]*Position, error)
	GetCheckpoints(ctx context.Context, fundID, account string) ([]*Checkpoint, error)
}

// StakeService defines the interface for stake data
type StakeService interface {
	GetStake(ctx context.Context, fundID, account string) (*Stake, error)
	GetDiscount(ctx context.Context, fundID, account string) (*Discount, error)
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
