package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrFundNotFound                    = errors.Register(ModuleName, 1, "fund not found")
	ErrFundExists                      = errors.Register(ModuleName, 2, "fund already exists")
	ErrInvalidAmount                   = errors.Register(ModuleName, 3, "amount must be positive")
	ErrWrongPhase                      = errors.Register(ModuleName, 4, "operation not allowed in current fund phase")
	ErrCapExceeded                     = errors.Register(ModuleName, 5, "contribution exceeds investment cap")
	ErrWithdrawalExceedsAvailableFunds = errors.Register(ModuleName, 6, "withdrawal exceeds available funds")
	ErrInsufficientBalance             = errors.Register(ModuleName, 7, "insufficient fund balance")
	ErrUnauthorized                    = errors.Register(ModuleName, 8, "unauthorized")
	ErrInvalidFeeConfig                = errors.Register(ModuleName, 9, "invalid fee configuration")
	ErrInvalidAddress                  = errors.Register(ModuleName, 10, "invalid address")
	ErrInvalidFundID                   = errors.Register(ModuleName, 11, "invalid fund id")
)
