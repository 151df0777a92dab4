package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/bcf-portal/pkg/db"
)

// Base is embedded by the gorm-backed catalog and order repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(conn *gorm.DB) Base {
	return Base{db: conn}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// First loads one row into dest. found is false, with a nil error, when no row matches.
func (b Base) First(ctx context.Context, dest any, query any, args ...any) (found bool, err error) {
	err = b.DB(ctx).Where(query, args...).Take(dest).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Insert creates row. A unique-key violation is reported as onDuplicate so
// callers can retry with a fresh key.
func (b Base) Insert(ctx context.Context, row any, onDuplicate error) error {
	err := b.DB(ctx).Create(row).Error
	if err != nil && onDuplicate != nil && db.IsUniqueViolation(err, "") {
		return onDuplicate
	}
	return err
}
