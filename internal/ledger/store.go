package ledger

import "slices"

// AccountStore keys accounts by id. Accounts are created lazily on first
// reference and never deleted.
type AccountStore[T Amount[T]] struct {
	accounts map[AccountID]*Account[T]
}

func NewAccountStore[T Amount[T]]() *AccountStore[T] {
	return &AccountStore[T]{accounts: make(map[AccountID]*Account[T])}
}

// GetOrCreate returns the account for id, inserting a zero-valued one if
// none exists yet. This is the only creation path.
func (s *AccountStore[T]) GetOrCreate(id AccountID) *Account[T] {
	a, ok := s.accounts[id]
	if !ok {
		a = &Account[T]{}
		s.accounts[id] = a
	}
	return a
}

func (s *AccountStore[T]) Get(id AccountID) (*Account[T], bool) {
	a, ok := s.accounts[id]
	return a, ok
}

func (s *AccountStore[T]) Len() int {
	return len(s.accounts)
}

// IDs returns every account id in ascending order, so reports come out
// deterministic.
func (s *AccountStore[T]) IDs() []AccountID {
	ids := make([]AccountID, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TransactionStore keys stored transactions by id. Only deposits and
// withdrawals are ever inserted; entries are never deleted and only
// their status is ever changed.
type TransactionStore[T Amount[T]] struct {
	txs map[TransactionID]*Transaction[T]
}

func NewTransactionStore[T Amount[T]]() *TransactionStore[T] {
	return &TransactionStore[T]{txs: make(map[TransactionID]*Transaction[T])}
}

func (s *TransactionStore[T]) Contains(id TransactionID) bool {
	_, ok := s.txs[id]
	return ok
}

func (s *TransactionStore[T]) Get(id TransactionID) (*Transaction[T], bool) {
	tx, ok := s.txs[id]
	return tx, ok
}

// Insert stores a copy of tx keyed by its id. The caller has already
// checked for duplicates; a second insert with the same id would be a
// bug, so the original is never overwritten.
func (s *TransactionStore[T]) Insert(tx Transaction[T]) {
	if _, ok := s.txs[tx.ID]; ok {
		return
	}
	s.txs[tx.ID] = &tx
}

// SetStatus changes the status of an existing entry. Calling it for an
// unknown id is a no-op; the engine only calls it after a successful Get.
func (s *TransactionStore[T]) SetStatus(id TransactionID, status Status) {
	if tx, ok := s.txs[id]; ok {
		tx.Status = status
	}
}

func (s *TransactionStore[T]) Len() int {
	return len(s.txs)
}
