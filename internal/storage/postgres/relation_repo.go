package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RelationRepo answers existence checks against a single-id aggregate
// table (categories, genres, cast_members).
type RelationRepo struct {
	db    *sqlx.DB
	table string
}

func NewCategoryRepo(db *sqlx.DB) *RelationRepo {
	return &RelationRepo{db: db, table: "categories"}
}

func NewGenreRepo(db *sqlx.DB) *RelationRepo {
	return &RelationRepo{db: db, table: "genres"}
}

func NewCastMemberRepo(db *sqlx.DB) *RelationRepo {
	return &RelationRepo{db: db, table: "cast_members"}
}

// ExistingIDs returns the subset of candidate ids present in the
// table. Missing ids are not an error.
func (r *RelationRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(fmt.Sprintf(`SELECT id FROM %s WHERE id IN (?)`, r.table), ids)
	if err != nil {
		return nil, fmt.Errorf("%s ids query: %w", r.table, err)
	}
	q = r.db.Rebind(q)

	var existing []uuid.UUID
	if err := r.db.SelectContext(ctx, &existing, q, args...); err != nil {
		return nil, fmt.Errorf("%s ids select: %w", r.table, err)
	}
	return existing, nil
}
