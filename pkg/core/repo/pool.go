package repo

import "context"

// ConnHandler runs a unit of work with a connection which is acquired
// from a Pool and released when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool with an explicit
// lifecycle. It is opened once at process start and closed at shutdown
// by the owning command, never through implicit global state.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
