package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cents is a minimal integer amount proving the engine runs against any
// Amount implementation, not just decimals.
type cents int64

func (c cents) Add(o cents) cents { return c + o }
func (c cents) Sub(o cents) cents { return c - o }

func (c cents) Cmp(o cents) int {
	switch {
	case c < o:
		return -1
	case c > o:
		return 1
	default:
		return 0
	}
}

func TestApply_IntegerAmounts(t *testing.T) {
	t.Parallel()

	accounts := NewAccountStore[cents]()
	txs := NewTransactionStore[cents]()

	require.NoError(t, Apply(Deposit[cents](1, 1, 500), accounts, txs))
	require.NoError(t, Apply(Withdrawal[cents](1, 2, 150), accounts, txs))
	require.NoError(t, Apply(Dispute[cents](1, 1), accounts, txs))

	acct, ok := accounts.Get(1)
	require.True(t, ok)
	assert.Equal(t, cents(-150), acct.Available)
	assert.Equal(t, cents(500), acct.Held)
	assert.Equal(t, cents(350), acct.Total())

	require.NoError(t, Apply(Chargeback[cents](1, 1), accounts, txs))
	assert.Equal(t, cents(0), acct.Held)
	assert.True(t, acct.Locked)
}
