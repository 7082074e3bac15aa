package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/romariotrain/video-catalog/internal/video/repository"
)

// UnitOfWork hands out database transactions behind the repository.Tx
// interface.
type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.Tx, error) {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// txFrom unwraps the sqlx transaction. Repos in this package only work
// inside units of work created by this package.
func txFrom(tx repository.Tx) (*sqlx.Tx, error) {
	ptx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("postgres: unexpected tx type %T", tx)
	}
	return ptx.tx, nil
}
