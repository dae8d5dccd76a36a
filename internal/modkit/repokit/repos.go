// Package repokit holds the seams repositories bind to
package repokit

import (
	"context"

	"github.com/Vagvedi/gitrekt/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// WithTx runs fn inside a transaction, a nil runner is a programmer error
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	if tx == nil {
		panic("repokit: nil TxRunner")
	}
	return tx.Tx(ctx, fn)
}
