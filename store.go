package clubbook

// Store is the storage collaborator the engine consumes. Implementations
// must return transactions ascending by (date, sequence) and make
// CommitPassbookUpdates all-or-nothing: a partial commit would desynchronize
// the passbooks from the transaction log.
//
// The engine itself never locks: a caller running RecalculateAll must hold
// exclusive access to the store for the duration of the pass.
type Store interface {
	// ListTransactions returns transactions in canonical processing order,
	// every transaction when accountID is empty, otherwise only those where
	// the account appears on either side.
	ListTransactions(accountID string) ([]Transaction, error)

	// ListPassbooks returns every passbook with its account linkage.
	ListPassbooks() ([]Passbook, error)

	// CommitPassbookUpdates applies a batch of passbook updates atomically.
	CommitPassbookUpdates(updates []PassbookUpdate) error

	// AppendTransaction records a newly posted transaction and assigns its
	// sequence number. The passbook updates land in the same atomic unit:
	// either the transaction and its propagation are both recorded, or
	// neither is. A nil updates slice appends the bare transaction.
	AppendTransaction(tx Transaction, updates []PassbookUpdate) (Transaction, error)

	// ListProfitShares returns the profit-share rows for one vendor.
	ListProfitShares(vendorID string) ([]ProfitShare, error)
}
