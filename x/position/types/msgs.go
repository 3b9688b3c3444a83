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
		&MsgTransferPosition{},
		&MsgSplitPosition{},
	)
}

// Message types for the position module
const (
	TypeMsgTransferPosition = "transfer_position"
	TypeMsgSplitPosition    = "split_position"
)

// MsgServer defines the position module's message service
type MsgServer interface {
	TransferPosition(context.Context, *MsgTransferPosition) (*MsgTransferPositionResponse, error)
	SplitPosition(context.Context, *MsgSplitPosition) (*MsgSplitPositionResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// Placeholder until proto generation is set up; messages are routed
	// through the module handler.
}

// MsgTransferPosition transfers ownership of a position
type MsgTransferPosition struct {
	Owner      string `json:"owner"`
	Recipient  string `json:"recipient"`
	PositionID uint64 `json:"position_id"`
}

func (msg *MsgTransferPosition) Reset() { *msg = MsgTransferPosition{} }
func (msg *MsgTransferPosition) String() string {
	return fmt.Sprintf("MsgTransferPosition{%d -> %s}", msg.PositionID, msg.Recipient)
}
func (msg *MsgTransferPosition) ProtoMessage() {}

// XXX_MessageName returns the message type URL for MsgTransferPosition
func (msg *MsgTransferPosition) XXX_MessageName() string {
	return "venturefund.position.v1.MsgTransferPosition"
}

// ValidateBasic for MsgTransferPosition
func (msg *MsgTransferPosition) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners returns the signer addresses for MsgTransferPosition
func (msg *MsgTransferPosition) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// MsgSplitPosition splits a position into children with the given values
type MsgSplitPosition struct {
	Owner      string   `json:"owner"`
	PositionID uint64   `json:"position_id"`
	Values     []string `json:"values"`
}

func (msg *MsgSplitPosition) Reset() { *msg = MsgSplitPosition{} }
func (msg *MsgSplitPosition) String() string {
	return fmt.Sprintf("MsgSplitPosition{%d into %d}", msg.PositionID, len(msg.Values))
}
func (msg *MsgSplitPosition) ProtoMessage() {}

// XXX_MessageName returns the message type URL for MsgSplitPosition
func (msg *MsgSplitPosition) XXX_MessageName() string {
	return "venturefund.position.v1.MsgSplitPosition"
}

// ValidateBasic for MsgSplitPosition
func (msg *MsgSplitPosition) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress
	}
	if len(msg.Values) < 2 {
		return ErrSplitMismatch
	}
	return nil
}

// GetSigners returns the signer addresses for MsgSplitPosition
func (msg *MsgSplitPosition) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// MsgTransferPositionResponse is the response for MsgTransferPosition
type MsgTransferPositionResponse struct{}

func (msg *MsgTransferPositionResponse) Reset()         { *msg = MsgTransferPositionResponse{} }
func (msg *MsgTransferPositionResponse) String() string { return "MsgTransferPositionResponse" }
func (msg *MsgTransferPositionResponse) ProtoMessage()  {}

// MsgSplitPositionResponse is the response for MsgSplitPosition
type MsgSplitPositionResponse struct {
	PositionIDs []uint64 `json:"position_ids"`
}

func (msg *MsgSplitPositionResponse) Reset()         { *msg = MsgSplitPositionResponse{} }
func (msg *MsgSplitPositionResponse) String() string { return fmt.Sprintf("%v", msg.PositionIDs) }
func (msg *MsgSplitPositionResponse) ProtoMessage()  {}
