package handler

import (
	"errors"

	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/deppfellow/imagestore/internal/repository"
)

var (
	codeImageNotFound   = "IMAGE_NOT_FOUND"
	codeInvalidImageID  = "INVALID_IMAGE_ID"
	codeInvalidFieldKey = "INVALID_FIELD_KEY"
)

// storeError maps accessor errors onto API errors by outcome:
// bad identifiers are 400, NotFound is 404, TransientError is 503.
// Fatal errors pass through for the global handler to classify.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInvalidID):
		return errs.NewBadRequestError("Invalid image id", true, &codeInvalidImageID, nil, nil)
	case errors.Is(err, repository.ErrInvalidKey):
		return errs.NewBadRequestError("Invalid field name", true, &codeInvalidFieldKey, nil, nil)
	}

	switch repository.OutcomeOf(err) {
	case repository.NotFound:
		return errs.NewNotFoundError("Image not found", true, &codeImageNotFound)
	case repository.TransientError:
		return errs.NewServiceUnavailableError("The image store is temporarily unavailable")
	default:
		return err
	}
}
