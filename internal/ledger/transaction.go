package ledger

// AccountID identifies a client account.
type AccountID uint16

// TransactionID identifies a money-moving transaction.
type TransactionID uint32

type Kind uint8

const (
	KindDeposit Kind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// HasAmount reports whether the kind carries an amount of its own.
// Only deposits and withdrawals do; the other kinds reference one.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Status is the lifecycle state of a stored transaction.
type Status uint8

const (
	StatusStarted Status = iota
	StatusDisputed
	StatusResolved
	StatusChargedBack
)

func (s Status) String() string {
	switch s {
	case StatusStarted:
		return "started"
	case StatusDisputed:
		return "disputed"
	case StatusResolved:
		return "resolved"
	case StatusChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// Transaction is one input event. Amount is meaningful only when
// Kind.HasAmount(); Status is only ever mutated on stored (deposit or
// withdrawal) transactions, by later referencing events.
type Transaction[T Amount[T]] struct {
	Kind    Kind
	Account AccountID
	ID      TransactionID
	Amount  T
	Status  Status
}

func Deposit[T Amount[T]](account AccountID, id TransactionID, amount T) Transaction[T] {
	return Transaction[T]{Kind: KindDeposit, Account: account, ID: id, Amount: amount, Status: StatusStarted}
}

func Withdrawal[T Amount[T]](account AccountID, id TransactionID, amount T) Transaction[T] {
	return Transaction[T]{Kind: KindWithdrawal, Account: account, ID: id, Amount: amount, Status: StatusStarted}
}

func Dispute[T Amount[T]](account AccountID, id TransactionID) Transaction[T] {
	return Transaction[T]{Kind: KindDispute, Account: account, ID: id, Status: StatusStarted}
}

func Resolve[T Amount[T]](account AccountID, id TransactionID) Transaction[T] {
	return Transaction[T]{Kind: KindResolve, Account: account, ID: id, Status: StatusStarted}
}

func Chargeback[T Amount[T]](account AccountID, id TransactionID) Transaction[T] {
	return Transaction[T]{Kind: KindChargeback, Account: account, ID: id, Status: StatusStarted}
}
