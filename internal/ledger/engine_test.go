package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helper functions
// ---------------------------------------------------------------------------

// dec parses a decimal from a string, failing the test on bad input.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// newLedger returns a fresh pair of empty stores.
func newLedger() (*AccountStore[decimal.Decimal], *TransactionStore[decimal.Decimal]) {
	return NewAccountStore[decimal.Decimal](), NewTransactionStore[decimal.Decimal]()
}

// mustApply applies an event and requires it to be accepted.
func mustApply(t *testing.T, ev Transaction[decimal.Decimal], accounts *AccountStore[decimal.Decimal], txs *TransactionStore[decimal.Decimal]) {
	t.Helper()

	require.NoError(t, Apply(ev, accounts, txs))
}

// dispute, resolveTx, and chargeback build referencing events with the
// decimal instantiation the tests use throughout.
func dispute(account AccountID, id TransactionID) Transaction[decimal.Decimal] {
	return Dispute[decimal.Decimal](account, id)
}

func resolveTx(account AccountID, id TransactionID) Transaction[decimal.Decimal] {
	return Resolve[decimal.Decimal](account, id)
}

func chargeback(account AccountID, id TransactionID) Transaction[decimal.Decimal] {
	return Chargeback[decimal.Decimal](account, id)
}

// assertBalances checks one account's available, held, and locked state.
func assertBalances(t *testing.T, accounts *AccountStore[decimal.Decimal], id AccountID, available, held string, locked bool) {
	t.Helper()

	acct, ok := accounts.Get(id)
	require.True(t, ok, "account %d does not exist", id)
	assert.True(t, acct.Available.Equal(dec(t, available)), "available: want %s, got %s", available, acct.Available)
	assert.True(t, acct.Held.Equal(dec(t, held)), "held: want %s, got %s", held, acct.Held)
	assert.Equal(t, locked, acct.Locked, "locked")
}

// assertStatus checks the lifecycle status of a stored transaction.
func assertStatus(t *testing.T, txs *TransactionStore[decimal.Decimal], id TransactionID, want Status) {
	t.Helper()

	tx, ok := txs.Get(id)
	require.True(t, ok, "transaction %d does not exist", id)
	assert.Equal(t, want, tx.Status)
}

// ---------------------------------------------------------------------------
// Deposits and withdrawals
// ---------------------------------------------------------------------------

func TestApply_DepositAddsToAvailable(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "1.0")), accounts, txs)
	mustApply(t, Deposit(1, 2, dec(t, "2.5")), accounts, txs)

	assertBalances(t, accounts, 1, "3.5", "0", false)
	assertStatus(t, txs, 1, StatusStarted)
	assert.Equal(t, 2, txs.Len())
}

func TestApply_WithdrawalSubtractsFromAvailable(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "5")), accounts, txs)
	mustApply(t, Withdrawal(1, 2, dec(t, "1.5")), accounts, txs)

	assertBalances(t, accounts, 1, "3.5", "0", false)
	assertStatus(t, txs, 2, StatusStarted)
}

func TestApply_WithdrawalOfEntireBalance(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "5")), accounts, txs)
	mustApply(t, Withdrawal(1, 2, dec(t, "5")), accounts, txs)

	assertBalances(t, accounts, 1, "0", "0", false)
}

func TestApply_WithdrawalInsufficientFunds(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "1.0")), accounts, txs)

	err := Apply(Withdrawal(1, 2, dec(t, "1.01")), accounts, txs)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// The rejected withdrawal is not stored and the balance is untouched.
	assertBalances(t, accounts, 1, "1.0", "0", false)
	assert.False(t, txs.Contains(2))
}

func TestApply_DuplicateTransactionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		second func(t *testing.T) Transaction[decimal.Decimal]
	}{
		{
			name:   "deposit reusing a deposit id",
			second: func(t *testing.T) Transaction[decimal.Decimal] { return Deposit(1, 1, dec(t, "9")) },
		},
		{
			name:   "withdrawal reusing a deposit id",
			second: func(t *testing.T) Transaction[decimal.Decimal] { return Withdrawal(1, 1, dec(t, "1")) },
		},
		{
			name:   "deposit reusing an id from another account",
			second: func(t *testing.T) Transaction[decimal.Decimal] { return Deposit(2, 1, dec(t, "9")) },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accounts, txs := newLedger()
			mustApply(t, Deposit(1, 1, dec(t, "2")), accounts, txs)

			err := Apply(tt.second(t), accounts, txs)
			require.ErrorIs(t, err, ErrDuplicateTransaction)

			// The stored transaction keeps its original amount.
			assertBalances(t, accounts, 1, "2", "0", false)
			tx, ok := txs.Get(1)
			require.True(t, ok)
			assert.True(t, tx.Amount.Equal(dec(t, "2")))
		})
	}
}

// ---------------------------------------------------------------------------
// Disputes
// ---------------------------------------------------------------------------

func TestApply_DisputeHoldsFunds(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, Deposit(1, 2, dec(t, "2")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)

	assertBalances(t, accounts, 1, "2", "3", false)
	assertStatus(t, txs, 1, StatusDisputed)

	// Total is unchanged while funds are merely held.
	acct, _ := accounts.Get(1)
	assert.True(t, acct.Total().Equal(dec(t, "5")))
}

func TestApply_DisputeUnknownTransaction(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()

	err := Apply(dispute(1, 42), accounts, txs)
	require.ErrorIs(t, err, ErrReferenceNotFound)

	// Even a rejected event creates its account.
	assertBalances(t, accounts, 1, "0", "0", false)
}

func TestApply_DisputeFromAnotherAccount(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)

	err := Apply(dispute(2, 1), accounts, txs)
	require.ErrorIs(t, err, ErrAccountMismatch)

	assertBalances(t, accounts, 1, "3", "0", false)
	assertStatus(t, txs, 1, StatusStarted)
}

func TestApply_DisputeTwice(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)

	err := Apply(dispute(1, 1), accounts, txs)
	require.ErrorIs(t, err, ErrAlreadyDisputed)

	// Held is not doubled.
	assertBalances(t, accounts, 1, "0", "3", false)
}

func TestApply_DisputeAfterResolve(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, resolveTx(1, 1), accounts, txs)

	err := Apply(dispute(1, 1), accounts, txs)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	assertBalances(t, accounts, 1, "3", "0", false)
}

func TestApply_DisputeDrivesAvailableNegative(t *testing.T) {
	t.Parallel()

	// Deposit, withdraw everything, then dispute the deposit. The
	// disputed funds are gone, so available goes negative and stays
	// there.
	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "5")), accounts, txs)
	mustApply(t, Withdrawal(1, 2, dec(t, "5")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)

	assertBalances(t, accounts, 1, "-5", "5", false)

	acct, _ := accounts.Get(1)
	assert.True(t, acct.Total().Equal(dec(t, "0")))
}

func TestApply_DisputeWithdrawalHoldsItsAmount(t *testing.T) {
	t.Parallel()

	// Withdrawals are stored transactions too and can be disputed;
	// the hold moves the withdrawn amount out of available again.
	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "5")), accounts, txs)
	mustApply(t, Withdrawal(1, 2, dec(t, "2")), accounts, txs)
	mustApply(t, dispute(1, 2), accounts, txs)

	assertBalances(t, accounts, 1, "1", "2", false)
}

// ---------------------------------------------------------------------------
// Resolves
// ---------------------------------------------------------------------------

func TestApply_ResolveReleasesHold(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, resolveTx(1, 1), accounts, txs)

	assertBalances(t, accounts, 1, "3", "0", false)
	assertStatus(t, txs, 1, StatusResolved)
}

func TestApply_ResolveWithoutDispute(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)

	err := Apply(resolveTx(1, 1), accounts, txs)
	require.ErrorIs(t, err, ErrNotDisputed)

	assertBalances(t, accounts, 1, "3", "0", false)
	assertStatus(t, txs, 1, StatusStarted)
}

func TestApply_ResolveTwice(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, resolveTx(1, 1), accounts, txs)

	err := Apply(resolveTx(1, 1), accounts, txs)
	require.ErrorIs(t, err, ErrNotDisputed)

	// Funds are not released twice.
	assertBalances(t, accounts, 1, "3", "0", false)
}

func TestApply_ResolveUnknownTransaction(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()

	err := Apply(resolveTx(1, 42), accounts, txs)
	require.ErrorIs(t, err, ErrReferenceNotFound)
}

// ---------------------------------------------------------------------------
// Chargebacks
// ---------------------------------------------------------------------------

func TestApply_ChargebackRemovesHeldAndLocks(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, Deposit(1, 2, dec(t, "2")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, chargeback(1, 1), accounts, txs)

	// The disputed amount leaves the account for good; the rest stays.
	assertBalances(t, accounts, 1, "2", "0", true)
	assertStatus(t, txs, 1, StatusChargedBack)
}

func TestApply_ChargebackWithoutDispute(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)

	err := Apply(chargeback(1, 1), accounts, txs)
	require.ErrorIs(t, err, ErrNotDisputedOrResolved)

	assertBalances(t, accounts, 1, "3", "0", false)
}

func TestApply_ChargebackAfterResolve(t *testing.T) {
	t.Parallel()

	// A resolved transaction can still be charged back. The hold was
	// already released, so held goes negative and the account locks.
	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, resolveTx(1, 1), accounts, txs)
	mustApply(t, chargeback(1, 1), accounts, txs)

	assertBalances(t, accounts, 1, "3", "-3", true)
	assertStatus(t, txs, 1, StatusChargedBack)
}

// ---------------------------------------------------------------------------
// Locked accounts
// ---------------------------------------------------------------------------

func TestApply_LockedAccountRejectsEverything(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, Deposit(1, 2, dec(t, "2")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, chargeback(1, 1), accounts, txs)

	events := []struct {
		name string
		ev   Transaction[decimal.Decimal]
	}{
		{name: "deposit", ev: Deposit(1, 3, dec(t, "1"))},
		{name: "withdrawal", ev: Withdrawal(1, 4, dec(t, "1"))},
		{name: "dispute", ev: dispute(1, 2)},
		{name: "resolve", ev: resolveTx(1, 2)},
		{name: "chargeback", ev: chargeback(1, 2)},
	}

	for _, tt := range events {
		t.Run(tt.name, func(t *testing.T) {
			err := Apply(tt.ev, accounts, txs)
			require.ErrorIs(t, err, ErrAccountLocked)
		})
	}

	// Nothing got through.
	assertBalances(t, accounts, 1, "2", "0", true)
	assert.Equal(t, 2, txs.Len())
}

func TestApply_LockIsPerAccount(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "3")), accounts, txs)
	mustApply(t, dispute(1, 1), accounts, txs)
	mustApply(t, chargeback(1, 1), accounts, txs)

	// Another client is unaffected.
	mustApply(t, Deposit(2, 2, dec(t, "7")), accounts, txs)
	assertBalances(t, accounts, 2, "7", "0", false)
}

// ---------------------------------------------------------------------------
// Account creation
// ---------------------------------------------------------------------------

func TestApply_CreatesAccountEvenWhenRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ev      func(t *testing.T) Transaction[decimal.Decimal]
		wantErr error
	}{
		{
			name:    "overdrawing withdrawal",
			ev:      func(t *testing.T) Transaction[decimal.Decimal] { return Withdrawal(9, 1, dec(t, "1")) },
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "dispute of an unknown transaction",
			ev:      func(t *testing.T) Transaction[decimal.Decimal] { return dispute(9, 1) },
			wantErr: ErrReferenceNotFound,
		},
		{
			name:    "chargeback of an unknown transaction",
			ev:      func(t *testing.T) Transaction[decimal.Decimal] { return chargeback(9, 1) },
			wantErr: ErrReferenceNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accounts, txs := newLedger()
			require.Equal(t, 0, accounts.Len())

			err := Apply(tt.ev(t), accounts, txs)
			require.ErrorIs(t, err, tt.wantErr)

			assertBalances(t, accounts, 9, "0", "0", false)
		})
	}
}

// ---------------------------------------------------------------------------
// Transition table
// ---------------------------------------------------------------------------

func TestTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    Kind
		current Status
		next    Status
		wantErr error
	}{
		{kind: KindDispute, current: StatusStarted, next: StatusDisputed},
		{kind: KindDispute, current: StatusDisputed, wantErr: ErrAlreadyDisputed},
		{kind: KindDispute, current: StatusResolved, wantErr: ErrAlreadyResolved},
		{kind: KindDispute, current: StatusChargedBack, wantErr: ErrAlreadyResolved},
		{kind: KindResolve, current: StatusStarted, wantErr: ErrNotDisputed},
		{kind: KindResolve, current: StatusDisputed, next: StatusResolved},
		{kind: KindResolve, current: StatusResolved, wantErr: ErrNotDisputed},
		{kind: KindResolve, current: StatusChargedBack, wantErr: ErrNotDisputed},
		{kind: KindChargeback, current: StatusStarted, wantErr: ErrNotDisputedOrResolved},
		{kind: KindChargeback, current: StatusDisputed, next: StatusChargedBack},
		{kind: KindChargeback, current: StatusResolved, next: StatusChargedBack},
		{kind: KindChargeback, current: StatusChargedBack, wantErr: ErrNotDisputedOrResolved},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind.String()+" on "+tt.current.String(), func(t *testing.T) {
			t.Parallel()

			next, ok := nextStatus(tt.kind, tt.current)
			if tt.wantErr != nil {
				assert.False(t, ok)
				assert.ErrorIs(t, transitionErr(tt.kind, tt.current), tt.wantErr)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

// ---------------------------------------------------------------------------
// Full replays
// ---------------------------------------------------------------------------

func TestReplay_DuplicatesAndOverdraftsRejected(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()

	events := []Transaction[decimal.Decimal]{
		Deposit(1, 1, dec(t, "1.0")),
		Deposit(2, 2, dec(t, "2.0")),
		Deposit(1, 1, dec(t, "1.0")), // duplicate id
		Deposit(1, 3, dec(t, "2.0")),
		Deposit(1, 3, dec(t, "2.0")), // duplicate id
		Withdrawal(1, 4, dec(t, "1.5")),
		Withdrawal(2, 5, dec(t, "3.0")), // more than client 2 has
	}

	var rejected []error
	for _, ev := range events {
		if err := Apply(ev, accounts, txs); err != nil {
			rejected = append(rejected, err)
		}
	}

	require.Len(t, rejected, 3)
	assert.ErrorIs(t, rejected[0], ErrDuplicateTransaction)
	assert.ErrorIs(t, rejected[1], ErrDuplicateTransaction)
	assert.ErrorIs(t, rejected[2], ErrInsufficientFunds)

	assertBalances(t, accounts, 1, "1.5", "0", false)
	assertBalances(t, accounts, 2, "2.0", "0", false)
	assert.Equal(t, []AccountID{1, 2}, accounts.IDs())
}

func TestReplay_AvailableIsSumOfAcceptedMovements(t *testing.T) {
	t.Parallel()

	// With no disputes in play, the final available balance is exactly
	// the accepted deposits minus the accepted withdrawals.
	accounts, txs := newLedger()

	events := []Transaction[decimal.Decimal]{
		Deposit(1, 1, dec(t, "10.00")),
		Deposit(1, 2, dec(t, "0.25")),
		Withdrawal(1, 3, dec(t, "3.75")),
		Withdrawal(1, 4, dec(t, "100")), // rejected, does not count
		Deposit(1, 2, dec(t, "50")),     // rejected, does not count
		Deposit(1, 5, dec(t, "1.111")),
		Withdrawal(1, 6, dec(t, "1.111")),
	}

	accepted := 0
	for _, ev := range events {
		if Apply(ev, accounts, txs) == nil {
			accepted++
		}
	}

	assert.Equal(t, 5, accepted)
	// 10.00 + 0.25 - 3.75 + 1.111 - 1.111
	assertBalances(t, accounts, 1, "6.5", "0", false)
}

func TestReplay_ChargebackLocksOneClient(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()

	events := []Transaction[decimal.Decimal]{
		Deposit(1, 1, dec(t, "1.0")),
		Deposit(2, 2, dec(t, "2.0")),
		Deposit(1, 3, dec(t, "2.0")),
		Withdrawal(1, 4, dec(t, "1.5")),
		dispute(2, 2),
		chargeback(2, 2),
	}

	for _, ev := range events {
		mustApply(t, ev, accounts, txs)
	}

	assertBalances(t, accounts, 1, "1.5", "0", false)
	assertBalances(t, accounts, 2, "0", "0", true)
}

// ---------------------------------------------------------------------------
// Rejection reasons
// ---------------------------------------------------------------------------

func TestReason(t *testing.T) {
	t.Parallel()

	accounts, txs := newLedger()
	mustApply(t, Deposit(1, 1, dec(t, "1")), accounts, txs)

	err := Apply(Deposit(1, 1, dec(t, "1")), accounts, txs)
	require.Error(t, err)

	// Wrapped rejections still map to their reason code.
	assert.Equal(t, "duplicate_transaction", Reason(err))
	assert.Equal(t, "account_locked", Reason(ErrAccountLocked))
	assert.Equal(t, "", Reason(assert.AnError))
	assert.Equal(t, "", Reason(nil))
}
