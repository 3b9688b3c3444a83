package types

// Event types emitted by the stakeboost module
const (
	EventTypeStaked        = "stakeboost_staked"
	EventTypeUnstaked      = "stakeboost_unstaked"
	EventTypeConfigChanged = "stakeboost_config_changed"
)

// Event attribute keys
const (
	AttributeKeyStaker      = "staker"
	AttributeKeyFundID      = "fund_id"
	AttributeKeyAmount      = "amount"
	AttributeKeyTotalStaked = "total_staked"
	AttributeKeyMaxDiscount = "max_discount"
	AttributeKeyRampBlocks  = "ramp_blocks"
)
