package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"yatube/internal/core/apperror"
)

const mysqlDuplicateEntry = 1062

// translate maps driver errors onto the apperror kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", apperror.ErrConflict, err)
	default:
		return err
	}
}

// isDuplicate catches unique violations even when the dialector does not
// translate them.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
