package repository

import (
	"errors"
	"fmt"
	"strings"

	"ctchen222/ShareBnB/internal/api/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLite result codes, see https://www.sqlite.org/rescode.html
const (
	sqliteConstraint           = 19
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError maps datastore integrity violations onto the apperror taxonomy.
// Other errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperror.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperror.ErrReference, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", apperror.ErrRejected, pgErr.ConstraintName)
		}
		return err
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", apperror.ErrDuplicate, err)
		case sqliteConstraintForeignKey:
			return fmt.Errorf("%w: %v", apperror.ErrReference, err)
		case sqliteConstraintCheck:
			return fmt.Errorf("%w: %v", apperror.ErrRejected, err)
		}
		if coded.Code()&0xff == sqliteConstraint {
			// Extended codes disabled: fall back to the message.
			msg := err.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return fmt.Errorf("%w: %v", apperror.ErrDuplicate, err)
			case strings.Contains(msg, "FOREIGN KEY"):
				return fmt.Errorf("%w: %v", apperror.ErrReference, err)
			case strings.Contains(msg, "CHECK"):
				return fmt.Errorf("%w: %v", apperror.ErrRejected, err)
			}
		}
	}
	return err
}

// expectAffected turns a write that touched no rows into apperror.ErrNotFound.
func expectAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
