package ledger

import (
	"errors"
	"fmt"
)

// Business-rule failures. Each has its own cause so callers can tell the
// player exactly why an operation was refused.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidPlayerID   = errors.New("invalid player id")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to self")
	ErrBelowMinDeposit   = errors.New("below minimum deposit")
	ErrBankLimitExceeded = errors.New("bank balance limit exceeded")
)

// ErrStorage marks a failure of the account store. ErrTornTransfer also
// matches ErrStorage.
var (
	ErrStorage      = errors.New("storage failure")
	ErrTornTransfer = fmt.Errorf("%w: transfer rollback failed", ErrStorage)
)

var ruleViolations = []error{
	ErrInvalidAmount,
	ErrInvalidPlayerID,
	ErrAccountNotFound,
	ErrInsufficientFunds,
	ErrSelfTransfer,
	ErrBelowMinDeposit,
	ErrBankLimitExceeded,
}

// IsRuleViolation reports whether err is a business-rule failure rather than
// a technical one.
func IsRuleViolation(err error) bool {
	for _, target := range ruleViolations {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
