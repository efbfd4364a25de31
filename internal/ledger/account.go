package ledger

// Account holds the balances for one client. A fresh account starts with
// zero balances and unlocked; Locked flips true exactly once, on a
// successful chargeback, and never back.
type Account[T Amount[T]] struct {
	Available T
	Held      T
	Locked    bool
}

// Total is the derived overall balance. It is computed on demand and
// never stored.
func (a *Account[T]) Total() T {
	return a.Available.Add(a.Held)
}
