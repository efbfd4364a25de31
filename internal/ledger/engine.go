// Package ledger replays account-transaction events into per-account
// balances. Events arrive one at a time, in input order, and either
// mutate the two stores or are rejected with one of the errors in
// errors.go; a rejected event changes nothing.
package ledger

import "fmt"

// transitions is the full set of legal status changes for a stored
// transaction, keyed by the referencing event kind and the current
// status. Any pair not in the table is rejected.
//
//	started -> disputed -> resolved -> charged_back
//	                    \----------/
var transitions = map[Kind]map[Status]Status{
	KindDispute:    {StatusStarted: StatusDisputed},
	KindResolve:    {StatusDisputed: StatusResolved},
	KindChargeback: {StatusDisputed: StatusChargedBack, StatusResolved: StatusChargedBack},
}

// nextStatus looks up the status a referencing event moves a stored
// transaction to. ok is false when the transition is not in the table.
func nextStatus(kind Kind, current Status) (Status, bool) {
	next, ok := transitions[kind][current]
	return next, ok
}

// transitionErr picks the rejection for a (kind, current status) pair
// that is not in the transition table.
func transitionErr(kind Kind, current Status) error {
	switch kind {
	case KindDispute:
		if current == StatusDisputed {
			return ErrAlreadyDisputed
		}
		return ErrAlreadyResolved
	case KindResolve:
		return ErrNotDisputed
	case KindChargeback:
		return ErrNotDisputedOrResolved
	default:
		return fmt.Errorf("kind %s does not reference a transaction", kind)
	}
}

// Apply runs one event against the stores. It validates everything for
// the event's branch before mutating anything, so an error means both
// stores are exactly as they were. The one side effect that always
// happens is account creation: any event, accepted or not, creates its
// account on first reference.
func Apply[T Amount[T]](ev Transaction[T], accounts *AccountStore[T], txs *TransactionStore[T]) error {
	acct := accounts.GetOrCreate(ev.Account)

	// A locked account takes no further events of any kind.
	if acct.Locked {
		return fmt.Errorf("account %d: %w", ev.Account, ErrAccountLocked)
	}

	switch ev.Kind {
	case KindDeposit:
		if txs.Contains(ev.ID) {
			return fmt.Errorf("transaction %d: %w", ev.ID, ErrDuplicateTransaction)
		}
		acct.Available = acct.Available.Add(ev.Amount)
		txs.Insert(ev)
		return nil

	case KindWithdrawal:
		if txs.Contains(ev.ID) {
			return fmt.Errorf("transaction %d: %w", ev.ID, ErrDuplicateTransaction)
		}
		if acct.Available.Cmp(ev.Amount) < 0 {
			return fmt.Errorf("account %d: %w", ev.Account, ErrInsufficientFunds)
		}
		acct.Available = acct.Available.Sub(ev.Amount)
		txs.Insert(ev)
		return nil

	case KindDispute, KindResolve, KindChargeback:
		return applyReference(ev, acct, txs)

	default:
		return fmt.Errorf("unknown transaction kind %d", ev.Kind)
	}
}

// applyReference handles the three event kinds that act on a previously
// stored transaction rather than carrying money themselves.
func applyReference[T Amount[T]](ev Transaction[T], acct *Account[T], txs *TransactionStore[T]) error {
	ref, ok := txs.Get(ev.ID)
	if !ok {
		return fmt.Errorf("transaction %d: %w", ev.ID, ErrReferenceNotFound)
	}

	// An account can only act on its own transactions.
	if ref.Account != ev.Account {
		return fmt.Errorf("transaction %d: %w", ev.ID, ErrAccountMismatch)
	}

	next, ok := nextStatus(ev.Kind, ref.Status)
	if !ok {
		return fmt.Errorf("transaction %d: %w", ev.ID, transitionErr(ev.Kind, ref.Status))
	}

	// Only deposits and withdrawals are ever stored, so a reference
	// always carries an amount.
	if !ref.Kind.HasAmount() {
		return fmt.Errorf("transaction %d: %w", ev.ID, ErrNoAmount)
	}
	amount := ref.Amount

	txs.SetStatus(ev.ID, next)

	switch ev.Kind {
	case KindDispute:
		// Available can go negative here when the disputed funds were
		// already withdrawn; nothing clamps it.
		acct.Available = acct.Available.Sub(amount)
		acct.Held = acct.Held.Add(amount)
	case KindResolve:
		acct.Available = acct.Available.Add(amount)
		acct.Held = acct.Held.Sub(amount)
	case KindChargeback:
		// Held can go negative here when the transaction was already
		// resolved; nothing clamps it.
		acct.Held = acct.Held.Sub(amount)
		acct.Locked = true
	}
	return nil
}
