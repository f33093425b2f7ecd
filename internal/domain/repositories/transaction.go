package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions. Every mutating service
// operation acquires its own transactional scope through ExecTx; nothing is
// shared across requests.
type TransactionManager interface {
	// ExecTx executes a function within a transaction. The transaction is
	// rolled back on every error path, committed otherwise.
	ExecTx(ctx context.Context, fn TxFn) error
}
