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
		&MsgCreateFund{},
		&MsgContribute{},
		&MsgCloseFunding{},
		&MsgDeployCapital{},
		&MsgReturnCapital{},
		&MsgCloseFund{},
		&MsgInjectProfit{},
		&MsgWithdraw{},
		&MsgSetFeeConfig{},
	)
}

// Message types for the fund module
const (
	TypeMsgCreateFund    = "create_fund"
	TypeMsgContribute    = "contribute"
	TypeMsgCloseFunding  = "close_funding"
	TypeMsgDeployCapital = "deploy_capital"
	TypeMsgReturnCapital = "return_capital"
	TypeMsgCloseFund     = "close_fund"
	TypeMsgInjectProfit  = "inject_profit"
	TypeMsgWithdraw      = "withdraw"
	TypeMsgSetFeeConfig  = "set_fee_config"
)

// MsgServer defines the fund module's message service
type MsgServer interface {
	CreateFund(context.Context, *MsgCreateFund) (*MsgCreateFundResponse, error)
	Contribute(context.Context, *MsgContribute) (*MsgContributeResponse, error)
	CloseFunding(context.Context, *MsgCloseFunding) (*MsgCloseFundingResponse, error)
	DeployCapital(context.Context, *MsgDeployCapital) (*MsgDeployCapitalResponse, error)
	ReturnCapital(context.Context, *MsgReturnCapital) (*MsgReturnCapitalResponse, error)
	CloseFund(context.Context, *MsgCloseFund) (*MsgCloseFundResponse, error)
	InjectProfit(context.Context, *MsgInjectProfit) (*MsgInjectProfitResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	SetFeeConfig(context.Context, *MsgSetFeeConfig) (*MsgSetFeeConfigResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// Placeholder until proto generation is set up; messages are routed
	// through the module handler.
}

// MsgCreateFund bootstraps the fund singleton for a deployment
type MsgCreateFund struct {
	Operator      string `json:"operator"`
	FundID        string `json:"fund_id"`
	Denom         string `json:"denom"`
	Treasury      string `json:"treasury"`
	EntryFeeRate  string `json:"entry_fee_rate"`
	CarryFeeRate  string `json:"carry_fee_rate"`
	InvestmentCap string `json:"investment_cap"`
}

func (msg *MsgCreateFund) Reset()         { *msg = MsgCreateFund{} }
func (msg *MsgCreateFund) String() string { return fmt.Sprintf("MsgCreateFund{%s}", msg.FundID) }
func (msg *MsgCreateFund) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgCreateFund
func (msg *MsgCreateFund) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgCreateFund"
}

// ValidateBasic for MsgCreateFund
func (msg *MsgCreateFund) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.Treasury); err != nil {
		return ErrInvalidAddress
	}
	if err := ValidateFundID(msg.FundID); err != nil {
		return err
	}
	if msg.Denom == "" {
		return ErrInvalidFeeConfig
	}
	return nil
}

// GetSigners returns the signer addresses for MsgCreateFund
func (msg *MsgCreateFund) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgContribute contributes currency during the funding phase
type MsgContribute struct {
	Contributor string `json:"contributor"`
	FundID      string `json:"fund_id"`
	Amount      string `json:"amount"`
	Metadata    string `json:"metadata,omitempty"`
}

func (msg *MsgContribute) Reset()         { *msg = MsgContribute{} }
func (msg *MsgContribute) String() string { return fmt.Sprintf("MsgContribute{%s %s}", msg.Contributor, msg.Amount) }
func (msg *MsgContribute) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgContribute
func (msg *MsgContribute) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgContribute"
}

// ValidateBasic for MsgContribute
func (msg *MsgContribute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Contributor); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgContribute
func (msg *MsgContribute) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Contributor)
	return []sdk.AccAddress{addr}
}

// MsgCloseFunding moves the fund from funding to deployed phase
type MsgCloseFunding struct {
	Operator string `json:"operator"`
	FundID   string `json:"fund_id"`
}

func (msg *MsgCloseFunding) Reset()         { *msg = MsgCloseFunding{} }
func (msg *MsgCloseFunding) String() string { return fmt.Sprintf("MsgCloseFunding{%s}", msg.FundID) }
func (msg *MsgCloseFunding) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgCloseFunding
func (msg *MsgCloseFunding) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgCloseFunding"
}

// ValidateBasic for MsgCloseFunding
func (msg *MsgCloseFunding) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgCloseFunding
func (msg *MsgCloseFunding) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgDeployCapital moves pooled capital to an external destination
type MsgDeployCapital struct {
	Operator    string `json:"operator"`
	FundID      string `json:"fund_id"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}

func (msg *MsgDeployCapital) Reset()         { *msg = MsgDeployCapital{} }
func (msg *MsgDeployCapital) String() string { return fmt.Sprintf("MsgDeployCapital{%s %s}", msg.FundID, msg.Amount) }
func (msg *MsgDeployCapital) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgDeployCapital
func (msg *MsgDeployCapital) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgDeployCapital"
}

// ValidateBasic for MsgDeployCapital
func (msg *MsgDeployCapital) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.Destination); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgDeployCapital
func (msg *MsgDeployCapital) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgReturnCapital returns principal from an external project; it is not
// profit and does not touch breakeven accounting
type MsgReturnCapital struct {
	From   string `json:"from"`
	FundID string `json:"fund_id"`
	Amount string `json:"amount"`
}

func (msg *MsgReturnCapital) Reset()         { *msg = MsgReturnCapital{} }
func (msg *MsgReturnCapital) String() string { return fmt.Sprintf("MsgReturnCapital{%s %s}", msg.FundID, msg.Amount) }
func (msg *MsgReturnCapital) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgReturnCapital
func (msg *MsgReturnCapital) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgReturnCapital"
}

// ValidateBasic for MsgReturnCapital
func (msg *MsgReturnCapital) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgReturnCapital
func (msg *MsgReturnCapital) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// MsgCloseFund moves the fund to the terminal closed phase
type MsgCloseFund struct {
	Operator string `json:"operator"`
	FundID   string `json:"fund_id"`
}

func (msg *MsgCloseFund) Reset()         { *msg = MsgCloseFund{} }
func (msg *MsgCloseFund) String() string { return fmt.Sprintf("MsgCloseFund{%s}", msg.FundID) }
func (msg *MsgCloseFund) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgCloseFund
func (msg *MsgCloseFund) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgCloseFund"
}

// ValidateBasic for MsgCloseFund
func (msg *MsgCloseFund) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgCloseFund
func (msg *MsgCloseFund) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgInjectProfit credits returned profit to the fund, taking the carry fee
// on the portion above the breakeven threshold
type MsgInjectProfit struct {
	Operator string `json:"operator"`
	FundID   string `json:"fund_id"`
	Amount   string `json:"amount"`
}

func (msg *MsgInjectProfit) Reset()         { *msg = MsgInjectProfit{} }
func (msg *MsgInjectProfit) String() string { return fmt.Sprintf("MsgInjectProfit{%s %s}", msg.FundID, msg.Amount) }
func (msg *MsgInjectProfit) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgInjectProfit
func (msg *MsgInjectProfit) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgInjectProfit"
}

// ValidateBasic for MsgInjectProfit
func (msg *MsgInjectProfit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgInjectProfit
func (msg *MsgInjectProfit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgWithdraw takes out part of the caller's accrued entitlement
type MsgWithdraw struct {
	Account string `json:"account"`
	FundID  string `json:"fund_id"`
	Amount  string `json:"amount"`
}

func (msg *MsgWithdraw) Reset()         { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) String() string { return fmt.Sprintf("MsgWithdraw{%s %s}", msg.Account, msg.Amount) }
func (msg *MsgWithdraw) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgWithdraw
func (msg *MsgWithdraw) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgWithdraw"
}

// ValidateBasic for MsgWithdraw
func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Account); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgWithdraw
func (msg *MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Account)
	return []sdk.AccAddress{addr}
}

// MsgSetFeeConfig updates the fund's rates and cap (operator only)
type MsgSetFeeConfig struct {
	Operator      string `json:"operator"`
	FundID        string `json:"fund_id"`
	EntryFeeRate  string `json:"entry_fee_rate"`
	CarryFeeRate  string `json:"carry_fee_rate"`
	InvestmentCap string `json:"investment_cap"`
}

func (msg *MsgSetFeeConfig) Reset()         { *msg = MsgSetFeeConfig{} }
func (msg *MsgSetFeeConfig) String() string { return fmt.Sprintf("MsgSetFeeConfig{%s}", msg.FundID) }
func (msg *MsgSetFeeConfig) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgSetFeeConfig
func (msg *MsgSetFeeConfig) XXX_MessageName() string {
	return "venturefund.fund.v1.MsgSetFeeConfig"
}

// ValidateBasic for MsgSetFeeConfig
func (msg *MsgSetFeeConfig) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Operator); err != nil {
		return ErrInvalidAddress
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners returns the signer addresses for MsgSetFeeConfig
func (msg *MsgSetFeeConfig) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Operator)
	return []sdk.AccAddress{addr}
}

// MsgCreateFundResponse is the response for MsgCreateFund
type MsgCreateFundResponse struct {
	FundID string `json:"fund_id"`
}

func (msg *MsgCreateFundResponse) Reset()         { *msg = MsgCreateFundResponse{} }
func (msg *MsgCreateFundResponse) String() string { return msg.FundID }
func (msg *MsgCreateFundResponse) ProtoMessage()  {}

// MsgContributeResponse is the response for MsgContribute
type MsgContributeResponse struct {
	PositionID uint64 `json:"position_id"`
	Fee        string `json:"fee"`
	NetAmount  string `json:"net_amount"`
}

func (msg *MsgContributeResponse) Reset()         { *msg = MsgContributeResponse{} }
func (msg *MsgContributeResponse) String() string { return msg.NetAmount }
func (msg *MsgContributeResponse) ProtoMessage()  {}

// MsgCloseFundingResponse is the response for MsgCloseFunding
type MsgCloseFundingResponse struct {
	Phase string `json:"phase"`
}

func (msg *MsgCloseFundingResponse) Reset()         { *msg = MsgCloseFundingResponse{} }
func (msg *MsgCloseFundingResponse) String() string { return msg.Phase }
func (msg *MsgCloseFundingResponse) ProtoMessage()  {}

// MsgDeployCapitalResponse is the response for MsgDeployCapital
type MsgDeployCapitalResponse struct {
	RemainingBalance string `json:"remaining_balance"`
}

func (msg *MsgDeployCapitalResponse) Reset()         { *msg = MsgDeployCapitalResponse{} }
func (msg *MsgDeployCapitalResponse) String() string { return msg.RemainingBalance }
func (msg *MsgDeployCapitalResponse) ProtoMessage()  {}

// MsgReturnCapitalResponse is the response for MsgReturnCapital
type MsgReturnCapitalResponse struct {
	NewBalance string `json:"new_balance"`
}

func (msg *MsgReturnCapitalResponse) Reset()         { *msg = MsgReturnCapitalResponse{} }
func (msg *MsgReturnCapitalResponse) String() string { return msg.NewBalance }
func (msg *MsgReturnCapitalResponse) ProtoMessage()  {}

// MsgCloseFundResponse is the response for MsgCloseFund
type MsgCloseFundResponse struct {
	Phase string `json:"phase"`
}

func (msg *MsgCloseFundResponse) Reset()         { *msg = MsgCloseFundResponse{} }
func (msg *MsgCloseFundResponse) String() string { return msg.Phase }
func (msg *MsgCloseFundResponse) ProtoMessage()  {}

// MsgInjectProfitResponse is the response for MsgInjectProfit
type MsgInjectProfitResponse struct {
	PayoutIndex uint64 `json:"payout_index"`
	Fee         string `json:"fee"`
	NetAmount   string `json:"net_amount"`
}

func (msg *MsgInjectProfitResponse) Reset()         { *msg = MsgInjectProfitResponse{} }
func (msg *MsgInjectProfitResponse) String() string { return msg.NetAmount }
func (msg *MsgInjectProfitResponse) ProtoMessage()  {}

// MsgWithdrawResponse is the response for MsgWithdraw
type MsgWithdrawResponse struct {
	Withdrawn string `json:"withdrawn"`
	Remaining string `json:"remaining"`
}

func (msg *MsgWithdrawResponse) Reset()         { *msg = MsgWithdrawResponse{} }
func (msg *MsgWithdrawResponse) String() string { return msg.Withdrawn }
func (msg *MsgWithdrawResponse) ProtoMessage()  {}

// MsgSetFeeConfigResponse is the response for MsgSetFeeConfig
type MsgSetFeeConfigResponse struct{}

func (msg *MsgSetFeeConfigResponse) Reset()         { *msg = MsgSetFeeConfigResponse{} }
func (msg *MsgSetFeeConfigResponse) String() string { return "MsgSetFeeConfigResponse" }
func (msg *MsgSetFeeConfigResponse) ProtoMessage()  {}
