package port

import "context"

// TxManager runs fn inside a single storage transaction. Repository calls
// made with the ctx passed to fn join that transaction; if fn returns an
// error the whole transaction rolls back and no partial state is visible
// to any other reader.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
