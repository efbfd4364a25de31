package ledger

// Amount is the capability the ledger needs from a monetary type: exact
// addition and subtraction plus a total ordering. Any fixed-precision
// implementation with value semantics qualifies; shopspring/decimal.Decimal
// is the one the rest of the tool instantiates with. The zero value of T
// must be the zero amount.
type Amount[T any] interface {
	Add(T) T
	Sub(T) T
	Cmp(T) int
}
