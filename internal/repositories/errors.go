package repositories

import (
	"errors"
	"fmt"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgError folds backend failures onto the store's typed errors. Unique
// violations become DuplicateValue, restricted foreign keys become InUse,
// missing rows become NotFound. Anything else passes through untouched.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", models.ErrDuplicateValue, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", models.ErrInUse, pgErr.ConstraintName)
		}
	}
	return err
}
