package types

// Event types emitted by the fund module
const (
	EventTypeFundCreated      = "fund_created"
	EventTypeContribution     = "fund_contribution"
	EventTypeFundingClosed    = "fund_funding_closed"
	EventTypeCapitalDeployed  = "fund_capital_deployed"
	EventTypeCapitalReturned  = "fund_capital_returned"
	EventTypeFundClosed       = "fund_closed"
	EventTypePayoutRecorded   = "fund_payout_recorded"
	EventTypeWithdrawal       = "fund_withdrawal"
	EventTypeFeeConfigChanged = "fund_fee_config_changed"
)

// Event attribute keys
const (
	AttributeKeyFundID      = "fund_id"
	AttributeKeyContributor = "contributor"
	AttributeKeyAccount     = "account"
	AttributeKeyAmount      = "amount"
	AttributeKeyFee         = "fee"
	AttributeKeyNetAmount   = "net_amount"
	AttributeKeyGrossAmount = "gross_amount"
	AttributeKeyPositionID  = "position_id"
	AttributeKeyPayoutIndex = "payout_index"
	AttributeKeyHeight      = "height"
	AttributeKeyDiscount    = "discount"
	AttributeKeyDestination = "destination"
	AttributeKeyPhase       = "phase"
)
