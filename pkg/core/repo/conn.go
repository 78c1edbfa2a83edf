package repo

import "context"

// TxHandler runs a unit of work within the given transaction. A non-nil
// returned error causes a rollback, so no partial effects stay visible.
type TxHandler func(context.Context, Tx) error

// Conn represents a single database connection which may run statements
// directly or delimit a transaction boundary with its Tx method.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
