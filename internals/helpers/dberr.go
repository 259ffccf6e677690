package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes that indicate the database schema is behind the
// application (missing column / missing relation).
const (
	pgUndefinedColumn = "42703"
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
)

// IsSchemaMismatch reports whether err means the target table or column
// does not exist, i.e. the org database has not run the latest setup.
func IsSchemaMismatch(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn || pgErr.Code == pgUndefinedTable
	}
	return false
}

// IsUniqueViolation reports a unique-constraint conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// JsonDBError maps a persistence error to the standard error shape:
// schema mismatch becomes 424 with a remediation hint, everything else
// is a generic 500.
func JsonDBError(c *fiber.Ctx, err error) error {
	if IsSchemaMismatch(err) {
		return c.Status(fiber.StatusFailedDependency).JSON(ErrorResponse{
			Success:   false,
			Message:   "database schema is out of date, run the organization setup to upgrade",
			ErrorCode: "schema_not_upgraded",
		})
	}
	return JsonError(c, fiber.StatusInternalServerError, "database_error")
}
