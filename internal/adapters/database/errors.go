package database

import (
	"errors"
	"fmt"

	"inkwell/internal/core/apperror"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the application taxonomy. It relies
// on gorm.Config.TranslateError so that driver specific constraint errors
// arrive as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func translateError(err error, resource string, key interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NewNotFoundError(resource, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflictError(fmt.Sprintf("%s %v already exists", resource, key), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.NewDanglingReferenceError(fmt.Sprintf("%s %v references a missing row", resource, key), err)
	default:
		return fmt.Errorf("%s %v: %w", resource, key, err)
	}
}
