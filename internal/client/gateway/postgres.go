package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/raidellg/blocnotes/internal/client/gateway/migrations"
	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/dbx"
)

// PostgresRowStore implements RowStore over the remote notes table. The note
// payload is stored as a JSONB column alongside the metadata columns used for
// diffing.
type PostgresRowStore struct {
	db *sql.DB
}

// OpenPostgres opens a lazy connection to the remote row store. No network
// traffic happens until the first query, so the client starts offline.
func OpenPostgres(dsn string) (*PostgresRowStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open row store: %w", err)
	}
	return &PostgresRowStore{db: db}, nil
}

// Migrate applies pending migrations to the remote schema.
func (r *PostgresRowStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, r.db, "."); err != nil {
		return fmt.Errorf("failed to migrate row store: %w", err)
	}
	return nil
}

func (r *PostgresRowStore) Close() error {
	return r.db.Close()
}

func (r *PostgresRowStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRowStore) ListMetadata(ctx context.Context, ownerID string) ([]models.RowMeta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, updated_at, is_deleted FROM notes WHERE user_id = $1
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list note metadata: %w", err)
	}
	defer rows.Close()

	var result []models.RowMeta
	for rows.Next() {
		var m models.RowMeta
		if err := rows.Scan(&m.ID, &m.UpdatedAt, &m.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}
	return result, nil
}

func (r *PostgresRowStore) ListFull(ctx context.Context, ownerID string, ids []string) ([]models.Row, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, email, updated_at, created_at, is_deleted, note
		FROM notes WHERE user_id = $1 AND id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list full rows: %w", err)
	}
	defer rows.Close()

	var result []models.Row
	for rows.Next() {
		var row models.Row
		var payload []byte
		if err := rows.Scan(&row.ID, &row.UserID, &row.Email, &row.UpdatedAt, &row.CreatedAt, &row.IsDeleted, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan full row: %w", err)
		}
		if err := json.Unmarshal(payload, &row.Note); err != nil {
			return nil, fmt.Errorf("failed to decode note %s: %w", row.ID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate full rows: %w", err)
	}
	return result, nil
}

// UpsertRows writes all rows in one transaction. The guard on user_id keeps
// an id collision from silently overwriting another owner's row.
func (r *PostgresRowStore) UpsertRows(ctx context.Context, upserts []models.Row) error {
	if len(upserts) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		const query = `
			INSERT INTO notes (id, user_id, email, updated_at, created_at, is_deleted, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id)
			DO UPDATE SET
				email = EXCLUDED.email,
				updated_at = EXCLUDED.updated_at,
				is_deleted = EXCLUDED.is_deleted,
				note = EXCLUDED.note
				WHERE notes.user_id = EXCLUDED.user_id;
		`
		for _, row := range upserts {
			payload, err := json.Marshal(row.Note)
			if err != nil {
				return fmt.Errorf("failed to encode note %s: %w", row.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query,
				row.ID, row.UserID, row.Email, row.UpdatedAt, row.CreatedAt, row.IsDeleted, payload,
			); err != nil {
				return fmt.Errorf("failed to upsert note %s: %w", row.ID, err)
			}
		}
		return nil
	})
}
