package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageBody struct {
	Name     string   `json:"name" validate:"required"`
	URL      string   `json:"url" validate:"required,url"`
	AILabels []string `json:"ai_labels" validate:"omitempty,dive,required"`
}

func (b *imageBody) Validate() error { return Struct(b) }

type objectIDParam struct {
	ID string `param:"id" validate:"required,mongodb"`
}

func (p *objectIDParam) Validate() error { return Struct(p) }

type numericParam struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (p *numericParam) Validate() error { return Struct(p) }

type customChecked struct{}

func (customChecked) Validate() error {
	return CustomValidationErrors{{Field: "key", Message: "is reserved"}}
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_ValidBody(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"name":"cat.jpg","url":"https://bucket/cat.jpg","ai_labels":["cat"]}`)

	var body imageBody
	require.NoError(t, BindAndValidate(c, &body))
	assert.Equal(t, "cat.jpg", body.Name)
	assert.Equal(t, []string{"cat"}, body.AILabels)
}

func TestBindAndValidate_FieldErrorsUseJSONNames(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"url":"not a url","ai_labels":[""]}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &imageBody{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.True(t, httpErr.Override)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid URL", fields["url"])
	assert.Equal(t, "is required", fields["ai_labels[0]"])
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"name":`)

	httpErr := asHTTPError(t, BindAndValidate(c, &imageBody{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, httpErr.Override)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_ObjectIDParam(t *testing.T) {
	c, _ := newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	httpErr := asHTTPError(t, BindAndValidate(c, &objectIDParam{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "id", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a 24 character hex object id", httpErr.Errors[0].Error)
}

func TestBindAndValidate_NonNumericParam(t *testing.T) {
	c, _ := newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	httpErr := asHTTPError(t, BindAndValidate(c, &numericParam{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "invalid syntax")
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c, _ := newContext(http.MethodGet, "")

	httpErr := asHTTPError(t, BindAndValidate(c, &customChecked{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "key", httpErr.Errors[0].Field)
	assert.Equal(t, "is reserved", httpErr.Errors[0].Error)
}
