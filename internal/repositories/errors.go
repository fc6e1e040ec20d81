package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrApplicationExists    = errors.New("application already exists")
	ErrAttendanceExists     = errors.New("attendance already exists")
	ErrQuotaExceeded        = errors.New("monthly post quota exceeded")
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// isDuplicateKey reports a unique index violation. gorm translates it when
// TranslateError is on; the pgconn check covers connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
