package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxOpenItemRepository struct {
	pool *pgxpool.Pool
}

// newPgxOpenItemRepository creates a new repository for the open-item subledger.
func newPgxOpenItemRepository(pool *pgxpool.Pool) portsrepo.OpenItemRepositoryFacade {
	return &PgxOpenItemRepository{pool: pool}
}

// Ensure PgxOpenItemRepository implements portsrepo.OpenItemRepositoryFacade
var _ portsrepo.OpenItemRepositoryFacade = (*PgxOpenItemRepository)(nil)

const openItemColumns = `
	item_id, ledger_id, account_id, counterparty, description,
	original_amount, balance, created_date, settled,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanOpenItem(row pgx.Row) (models.OpenItem, error) {
	var m models.OpenItem
	err := row.Scan(
		&m.ItemID,
		&m.LedgerID,
		&m.AccountID,
		&m.Counterparty,
		&m.Description,
		&m.OriginalAmount,
		&m.Balance,
		&m.CreatedDate,
		&m.Settled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindItemByID retrieves a single open item.
func (r *PgxOpenItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.OpenItem, error) {
	query := `SELECT ` + openItemColumns + ` FROM open_items WHERE item_id = $1;`
	m, err := scanOpenItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open item by ID "+itemID, err)
	}
	d := mapping.ToDomainOpenItem(m)
	return &d, nil
}

// FindItemsByIDs retrieves multiple open items by their IDs.
func (r *PgxOpenItemRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.OpenItem, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.OpenItem{}, nil
	}
	query := `SELECT ` + openItemColumns + ` FROM open_items WHERE item_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open items by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.OpenItem, len(itemIDs))
	for rows.Next() {
		m, err := scanOpenItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open item row", err)
		}
		result[m.ItemID] = mapping.ToDomainOpenItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open item rows", err)
	}
	return result, nil
}

// ListItemsByAccount retrieves the open items of one account's subledger.
func (r *PgxOpenItemRepository) ListItemsByAccount(ctx context.Context, accountID string, includeSettled bool) ([]domain.OpenItem, error) {
	query := `SELECT ` + openItemColumns + ` FROM open_items WHERE account_id = $1`
	if !includeSettled {
		query += ` AND settled = FALSE`
	}
	query += ` ORDER BY created_date, item_id;`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open items for account "+accountID, err)
	}
	defer rows.Close()

	items := []models.OpenItem{}
	for rows.Next() {
		m, err := scanOpenItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open item row", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open item rows", err)
	}
	return mapping.ToDomainOpenItemSlice(items), nil
}

// SubledgerTotal sums the running balances of an account's open items.
func (r *PgxOpenItemRepository) SubledgerTotal(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(balance), 0) FROM open_items WHERE account_id = $1;`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to total subledger for account "+accountID, err)
	}
	return total, nil
}

// ApplyMutationsInTx applies the subledger side effects of a voucher commit
// inside the caller's transaction. New items are inserted; applications lock
// the target row, adjust the balance, and flag settled items. An application
// that would flip the balance's sign without the overpayment flag fails with
// apperrors.ErrOverApplication, aborting the whole commit.
func (r *PgxOpenItemRepository) ApplyMutationsInTx(ctx context.Context, tx pgx.Tx, mutations []domain.OpenItemMutation, userID string, now time.Time) error {
	insertQuery := `
		INSERT INTO open_items (` + openItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, mut := range mutations {
		switch {
		case mut.Open != nil:
			m := mapping.ToModelOpenItem(*mut.Open)
			m.CreatedAt = now
			m.CreatedBy = userID
			m.LastUpdatedAt = now
			m.LastUpdatedBy = userID
			_, err := tx.Exec(ctx, insertQuery,
				m.ItemID,
				m.LedgerID,
				m.AccountID,
				m.Counterparty,
				m.Description,
				m.OriginalAmount,
				m.Balance,
				m.CreatedDate,
				m.Settled,
				m.CreatedAt,
				m.CreatedBy,
				m.LastUpdatedAt,
				m.LastUpdatedBy,
			)
			if err != nil {
				return apperrors.NewAppError(500, "failed to insert open item "+m.ItemID, err)
			}

		case mut.Apply != nil:
			app := mut.Apply
			var balance decimal.Decimal
			err := tx.QueryRow(ctx,
				`SELECT balance FROM open_items WHERE item_id = $1 FOR UPDATE;`,
				app.ItemID,
			).Scan(&balance)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrNotFound
				}
				return apperrors.NewAppError(500, "failed to lock open item "+app.ItemID, err)
			}

			newBalance := balance.Add(app.Delta)
			// A sign flip means the application exceeds what is outstanding.
			if !app.Overpayment && newBalance.Sign() != 0 && newBalance.Sign() == -balance.Sign() {
				return apperrors.ErrOverApplication
			}

			_, err = tx.Exec(ctx,
				`UPDATE open_items
				 SET balance = $2, settled = $3, last_updated_at = $4, last_updated_by = $5
				 WHERE item_id = $1;`,
				app.ItemID,
				newBalance,
				newBalance.IsZero(),
				now,
				userID,
			)
			if err != nil {
				return apperrors.NewAppError(500, "failed to apply to open item "+app.ItemID, err)
			}
		}
	}
	return nil
}
