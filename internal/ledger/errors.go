package ledger

import "errors"

// Rejection reasons returned by Apply. Every rejected event maps to
// exactly one of these; callers branch with errors.Is.
var (
	ErrAccountLocked         = errors.New("account is locked")
	ErrDuplicateTransaction  = errors.New("duplicate transaction")
	ErrInsufficientFunds     = errors.New("not enough funds to withdraw")
	ErrReferenceNotFound     = errors.New("referenced transaction not found")
	ErrAccountMismatch       = errors.New("transactions are not from the same account")
	ErrAlreadyDisputed       = errors.New("transaction already in dispute")
	ErrAlreadyResolved       = errors.New("transaction already resolved")
	ErrNotDisputed           = errors.New("transaction is not in dispute")
	ErrNotDisputedOrResolved = errors.New("transaction is not in dispute or resolved")
	ErrNoAmount              = errors.New("referenced transaction does not have an amount")
)

// Reason maps a rejection to a stable snake_case code for counters and
// structured logs. It returns "" for errors outside the taxonomy.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrReferenceNotFound):
		return "reference_not_found"
	case errors.Is(err, ErrAccountMismatch):
		return "account_mismatch"
	case errors.Is(err, ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, ErrNotDisputed):
		return "not_disputed"
	case errors.Is(err, ErrNotDisputedOrResolved):
		return "not_disputed_or_resolved"
	case errors.Is(err, ErrNoAmount):
		return "no_amount"
	default:
		return ""
	}
}
