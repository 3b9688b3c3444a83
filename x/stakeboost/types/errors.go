package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrStakeNotFound     = errors.Register(ModuleName, 1, "stake not found")
	ErrInvalidAmount     = errors.Register(ModuleName, 2, "amount must be positive")
	ErrInsufficientStake = errors.Register(ModuleName, 3, "unstake exceeds staked amount")
	ErrInvalidConfig     = errors.Register(ModuleName, 4, "invalid discount configuration")
	ErrUnauthorized      = errors.Register(ModuleName, 5, "unauthorized")
	ErrInvalidAddress    = errors.Register(ModuleName, 6, "invalid address")
)
