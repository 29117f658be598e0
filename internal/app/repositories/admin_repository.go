package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/dberrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/logger"
)

// IAdminRepository defines generic column-map mutations used by the admin
// console. The service layer supplies the table, id column and a field map
// already filtered through a per-kind whitelist.
type IAdminRepository interface {
	Insert(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error)
	Update(ctx context.Context, table, idColumn string, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, table, idColumn string, id int64) error
}

// AdminRepository executes generic admin mutations with squirrel
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert creates a row from a column/value map and returns the new ID
func (r *AdminRepository) Insert(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error) {
	sql, args, err := r.sb.Insert(table).
		SetMap(fields).
		Suffix("RETURNING " + idColumn).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build insert query for %s: %w", table, err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error inserting into %s: %w", table, err)
	}

	return id, nil
}

// Update applies a column/value map to one row. Updating a row that no
// longer exists is not an error; the follow-up snapshot shows the truth.
func (r *AdminRepository) Update(ctx context.Context, table, idColumn string, id int64, fields map[string]interface{}) error {
	sql, args, err := r.sb.Update(table).
		SetMap(fields).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update query for %s: %w", table, err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error updating %s: %w", table, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Str("table", table).Int64("id", id).Msg("Admin update matched no rows")
	}

	return nil
}

// Delete removes one row. Deleting an absent row succeeds.
func (r *AdminRepository) Delete(ctx context.Context, table, idColumn string, id int64) error {
	sql, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete query for %s: %w", table, err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting from %s: %w", table, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Str("table", table).Int64("id", id).Msg("Admin delete matched no rows")
	}

	return nil
}
