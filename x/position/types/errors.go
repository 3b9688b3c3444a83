package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrPositionNotFound = errors.Register(ModuleName, 1, "position not found")
	ErrNotOwner         = errors.Register(ModuleName, 2, "account does not own this position")
	ErrPositionRetired  = errors.Register(ModuleName, 3, "position has been retired")
	ErrInvalidValue     = errors.Register(ModuleName, 4, "position value must be positive")
	ErrSplitMismatch    = errors.Register(ModuleName, 5, "split values must sum to the position value")
	ErrInvalidAddress   = errors.Register(ModuleName, 6, "invalid address")
)
