package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
)

type PgxAllocationRepository struct {
	pool *pgxpool.Pool
}

// newPgxAllocationRepository creates a new repository for allocation dimensions.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryFacade {
	return &PgxAllocationRepository{pool: pool}
}

// Ensure PgxAllocationRepository implements portsrepo.AllocationRepositoryFacade
var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

const allocationColumns = `
	allocation_id, ledger_id, kind, name, valid_from, valid_to,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAllocation(row pgx.Row) (models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.LedgerID,
		&m.Kind,
		&m.Name,
		&m.ValidFrom,
		&m.ValidTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAllocation inserts a new allocation.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AllocationID,
		m.LedgerID,
		m.Kind,
		m.Name,
		m.ValidFrom,
		m.ValidTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert allocation "+m.AllocationID, err)
	}
	return nil
}

// FindAllocationByID retrieves an allocation by its ID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1;`
	m, err := scanAllocation(r.pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find allocation by ID "+allocationID, err)
	}
	d := mapping.ToDomainAllocation(m)
	return &d, nil
}

// FindAllocationsByIDs retrieves multiple allocations by their IDs.
func (r *PgxAllocationRepository) FindAllocationsByIDs(ctx context.Context, allocationIDs []string) (map[string]domain.Allocation, error) {
	if len(allocationIDs) == 0 {
		return map[string]domain.Allocation{}, nil
	}
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, allocationIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Allocation, len(allocationIDs))
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		result[m.AllocationID] = mapping.ToDomainAllocation(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}
	return result, nil
}

// ListAllocations retrieves a ledger's allocations, optionally filtered by kind.
func (r *PgxAllocationRepository) ListAllocations(ctx context.Context, ledgerID string, kind *domain.AllocationKind) ([]domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE ledger_id = $1`
	args := []interface{}{ledgerID}
	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY kind, name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for ledger "+ledgerID, err)
	}
	defer rows.Close()

	allocations := []models.Allocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		allocations = append(allocations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}
	return mapping.ToDomainAllocationSlice(allocations), nil
}

// UpdateAllocation updates an allocation's name and validity interval.
func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	m := mapping.ToModelAllocation(allocation)
	query := `
		UPDATE allocations
		SET name = $2, valid_from = $3, valid_to = $4, last_updated_at = $5, last_updated_by = $6
		WHERE allocation_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AllocationID,
		m.Name,
		m.ValidFrom,
		m.ValidTo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update allocation "+m.AllocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
