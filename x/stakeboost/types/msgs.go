package types

import (
	"context"
	"fmt"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgStake{},
		&MsgUnstake{},
	)
}

// Message types for the stakeboost module
const (
	TypeMsgStake   = "stake"
	TypeMsgUnstake = "unstake"
)

// MsgServer defines the stakeboost module's message service
type MsgServer interface {
	Stake(context.Context, *MsgStake) (*MsgStakeResponse, error)
	Unstake(context.Context, *MsgUnstake) (*MsgUnstakeResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// Placeholder until proto generation is set up; messages are routed
	// through the module handler.
}

// MsgStake escrows boost tokens toward a fund's carry fee discount
type MsgStake struct {
	Staker string `json:"staker"`
	FundID string `json:"fund_id"`
	Amount string `json:"amount"`
}

func (msg *MsgStake) Reset() { *msg = MsgStake{} }
func (msg *MsgStake) String() string {
	return fmt.Sprintf("MsgStake{%s %s %s}", msg.Staker, msg.FundID, msg.Amount)
}
func (msg *MsgStake) ProtoMessage() {}

// XXX_MessageName returns the message type URL for MsgStake
func (msg *MsgStake) XXX_MessageName() string {
	return "venturefund.stakeboost.v1.MsgStake"
}

// ValidateBasic for MsgStake
func (msg *MsgStake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners returns the signer addresses for MsgStake
func (msg *MsgStake) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

// MsgUnstake releases escrowed boost tokens back to the staker
type MsgUnstake struct {
	Staker string `json:"staker"`
	FundID string `json:"fund_id"`
	Amount string `json:"amount"`
}

func (msg *MsgUnstake) Reset() { *msg = MsgUnstake{} }
func (msg *MsgUnstake) String() string {
	return fmt.Sprintf("MsgUnstake{%s %s %s}", msg.Staker, msg.FundID, msg.Amount)
}
func (msg *MsgUnstake) ProtoMessage() {}

// XXX_MessageName returns the message type URL for MsgUnstake
func (msg *MsgUnstake) XXX_MessageName() string {
	return "venturefund.stakeboost.v1.MsgUnstake"
}

// ValidateBasic for MsgUnstake
func (msg *MsgUnstake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Staker); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners returns the signer addresses for MsgUnstake
func (msg *MsgUnstake) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Staker)
	return []sdk.AccAddress{addr}
}

// MsgStakeResponse is the response for MsgStake
type MsgStakeResponse struct {
	TotalStaked string `json:"total_staked"`
}

func (msg *MsgStakeResponse) Reset()         { *msg = MsgStakeResponse{} }
func (msg *MsgStakeResponse) String() string { return msg.TotalStaked }
func (msg *MsgStakeResponse) ProtoMessage()  {}

// MsgUnstakeResponse is the response for MsgUnstake
type MsgUnstakeResponse struct {
	TotalStaked string `json:"total_staked"`
}

func (msg *MsgUnstakeResponse) Reset()         { *msg = MsgUnstakeResponse{} }
func (msg *MsgUnstakeResponse) String() string { return msg.TotalStaked }
func (msg *MsgUnstakeResponse) ProtoMessage()  {}
