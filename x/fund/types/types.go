package types

import (
	"strings"
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "fund"
	StoreKey   = ModuleName

	// TreasuryPoolName is the module account collecting entry and carry fees
	// when a fund has no explicit treasury address configured.
	TreasuryPoolName = "fund_treasury"
)

// Fund lifecycle phases
const (
	PhaseFunding  = "funding"
	PhaseDeployed = "deployed"
	PhaseClosed   = "closed"
)

// ValidateFundID rejects empty IDs and IDs containing ':'. Fund IDs are the
// first segment of composite store keys delimited by ':'; an ID carrying the
// delimiter would make one fund's records prefix-match another fund's scans.
func ValidateFundID(fundID string) error {
	if fundID == "" || strings.Contains(fundID, ":") {
		return ErrInvalidFundID
	}
	return nil
}

// Fund is the capital ledger for one pooled investment vehicle.
//
// TotalContributed is gross of the entry fee and is the fund's breakeven
// threshold: cumulative profit below it is carry-fee free. It is monotonic;
// withdrawals and redeployments never shrink it.
type Fund struct {
	FundID   string `json:"fund_id"`
	Phase    string `json:"phase"`
	Denom    string `json:"denom"`
	Operator string `json:"operator"`
	Treasury string `json:"treasury"`

	TotalContributed math.Int `json:"total_contributed"`
	CumulativeProfit math.Int `json:"cumulative_profit"`
	Balance          math.Int `json:"balance"`

	FeeConfig FeeConfig `json:"fee_config"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// FeeConfig carries the fund's configured rates and cap. It is set at fund
// creation and changed only through MsgSetFeeConfig, which emits a change
// event.
type FeeConfig struct {
	// EntryFeeRate is taken from each contribution at contribution time.
	EntryFeeRate math.LegacyDec `json:"entry_fee_rate"`
	// CarryFeeRate applies to injected profit above the breakeven threshold.
	CarryFeeRate math.LegacyDec `json:"carry_fee_rate"`
	// InvestmentCap bounds TotalContributed. Zero means uncapped.
	InvestmentCap math.Int `json:"investment_cap"`
}

// Validate checks rate bounds. Entry and carry rates are independent scales.
func (c FeeConfig) Validate() error {
	if c.EntryFeeRate.IsNil() || c.EntryFeeRate.IsNegative() || c.EntryFeeRate.GT(math.LegacyOneDec()) {
		return ErrInvalidFeeConfig
	}
	if c.CarryFeeRate.IsNil() || c.CarryFeeRate.IsNegative() || c.CarryFeeRate.GT(math.LegacyOneDec()) {
		return ErrInvalidFeeConfig
	}
	if c.InvestmentCap.IsNil() || c.InvestmentCap.IsNegative() {
		return ErrInvalidFeeConfig
	}
	return nil
}

// NewFund creates a fund in the funding phase with zeroed ledgers.
func NewFund(fundID, denom, operator, treasury string, cfg FeeConfig) *Fund {
	now := time.Now().Unix()
	return &Fund{
		FundID:           fundID,
		Phase:            PhaseFunding,
		Denom:            denom,
		Operator:         operator,
		Treasury:         treasury,
		TotalContributed: math.ZeroInt(),
		CumulativeProfit: math.ZeroInt(),
		Balance:          math.ZeroInt(),
		FeeConfig:        cfg,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// BreakevenRemaining returns how much more gross profit is carry-fee free.
func (f *Fund) BreakevenRemaining() math.Int {
	remaining := f.TotalContributed.Sub(f.CumulativeProfit)
	if remaining.IsNegative() {
		return math.ZeroInt()
	}
	return remaining
}

// Payout is one immutable profit injection record. NetAmount is what entered
// the fund's distributable balance after the carry fee; GrossAmount feeds the
// cumulative breakeven accounting.
type Payout struct {
	Index       uint64   `json:"index"`
	Height      int64    `json:"height"`
	GrossAmount math.Int `json:"gross_amount"`
	FeeAmount   math.Int `json:"fee_amount"`
	NetAmount   math.Int `json:"net_amount"`
	// DiscountApplied is the weighted-average staking discount resolved at
	// injection time, kept for auditability of the fee from the payout list
	// alone.
	DiscountApplied math.LegacyDec `json:"discount_applied"`
	Timestamp       int64          `json:"timestamp"`
}

// WithdrawalState tracks how much a participant has already taken out.
// Entitlement itself is recomputed from payout history and position
// checkpoints on demand, so this is the only mutable per-participant state.
type WithdrawalState struct {
	FundID         string   `json:"fund_id"`
	Account        string   `json:"account"`
	TotalWithdrawn math.Int `json:"total_withdrawn"`
}

// NewWithdrawalState returns a zeroed state, created lazily on first
// withdrawal.
func NewWithdrawalState(fundID, account string) *WithdrawalState {
	return &WithdrawalState{
		FundID:         fundID,
		Account:        account,
		TotalWithdrawn: math.ZeroInt(),
	}
}
