package repository

import (
	"errors"

	"github.com/amirasaad/digitalbank/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to generic domain errors so that
// database concerns stay inside the infrastructure layer. Wrapped and joined
// errors are searched too. Unknown errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrValidation
	default:
		return err
	}
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// translate maps the generic not-found / already-exists errors to the
// entity-specific sentinels callers match on. A nil sentinel leaves that
// case as the generic domain error.
func translate(err, notFound, conflict error) error {
	err = MapGormErrorToDomain(err)
	switch {
	case notFound != nil && errors.Is(err, domain.ErrNotFound):
		return notFound
	case conflict != nil && errors.Is(err, domain.ErrAlreadyExists):
		return conflict
	default:
		return err
	}
}
