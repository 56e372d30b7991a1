package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantumhr/portal-service/internal/domain"
)

// PermissionRepository is the authorization authority: it resolves the full
// grant set recorded for a user. It satisfies the session package's
// Authority interface.
type PermissionRepository interface {
	ListGrants(ctx context.Context, userID string) ([]domain.Grant, error)
	ReplaceGrants(ctx context.Context, userID string, grants []domain.Grant) error
}

type permissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository returns a Postgres-backed implementation.
func NewPermissionRepository(pool *pgxpool.Pool) PermissionRepository {
	return &permissionRepository{pool: pool}
}

func (r *permissionRepository) ListGrants(ctx context.Context, userID string) ([]domain.Grant, error) {
	const query = `
        SELECT id, resource, action, granted
        FROM permissions WHERE user_id=$1
        ORDER BY resource, action`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.Grant
	for rows.Next() {
		var grant domain.Grant
		if err := rows.Scan(&grant.ID, &grant.Resource, &grant.Action, &grant.Granted); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *permissionRepository) ReplaceGrants(ctx context.Context, userID string, grants []domain.Grant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM permissions WHERE user_id=$1`, userID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO permissions (user_id, resource, action, granted)
        VALUES ($1, $2, $3, $4)`
	for _, grant := range grants {
		if _, err := tx.Exec(ctx, insert, userID, grant.Resource, grant.Action, grant.Granted); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
