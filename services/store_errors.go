package services

import (
	"errors"

	"github.com/google/uuid"

	"inkpost/errs"
	"inkpost/repository"
)

func newID() string {
	return uuid.NewString()
}

// storeError maps repository sentinels to service errors. Anything else is
// an internal failure carrying the store error as its cause.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errs.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return errs.Conflict("record already exists")
	default:
		return errs.Internal("store operation failed", err)
	}
}
