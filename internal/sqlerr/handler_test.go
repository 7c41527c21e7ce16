package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, InvalidTextRepr, MapCode("22P02"))
	assert.Equal(t, ConnectionException, MapCode("08006"))
	assert.Equal(t, InsufficientResources, MapCode("53300"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := fmt.Errorf("insert image: %w", &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		Message:    `null value in column "name" violates not-null constraint`,
		TableName:  "images",
		ColumnName: "name",
	})

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "IMAGE_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Name is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleError_UniqueViolationNamesColumn(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "images",
		ConstraintName: "images_url_key",
	}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "IMAGE_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Image with this Url already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_ConnectionExceptionIsUnavailable(t *testing.T) {
	err := &pgconn.PgError{Code: "08006", Severity: "FATAL"}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("fetch: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR"})
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "url", extractColumnForUniqueViolation("unique_images_url"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("images_name_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("images_pkey"))
}
