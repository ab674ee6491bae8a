package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/model"
)

// ErrConstraintViolation marks writes the database (or a model save hook)
// rejected because of a uniqueness, foreign key or not-null rule.
var ErrConstraintViolation = errors.New("constraint violation")

// wrapWrite annotates a failed write, tagging constraint failures so callers
// can tell them apart from storage errors with errors.Is.
func wrapWrite(op string, err error) error {
	if isConstraintViolation(err) {
		return fmt.Errorf("%s failed: %w: %w", op, ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		errors.Is(err, model.ErrNullField)
}
