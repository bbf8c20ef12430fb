package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("All fields are required"), http.StatusBadRequest},
		{Conflict("Product already exists"), http.StatusConflict},
		{NotFound("Product not found"), http.StatusNotFound},
		{PayloadTooLarge("Image size should be less than 1.3 MB"), http.StatusRequestEntityTooLarge},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), "code %s", tc.err.Code)
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(Conflict("dup")))
	// Errores envueltos conservan su código
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("update: %w", NotFound("missing"))))
	// Errores ajenos se reportan como INTERNAL
	assert.Equal(t, CodeInternal, CodeOf(errors.New("driver exploded")))
}

func TestFromErr(t *testing.T) {
	apiErr := FromErr(Validation("bad"), "fallback")
	assert.Equal(t, CodeValidation, apiErr.Code)
	assert.Equal(t, "bad", apiErr.Message)

	// Un error del driver no filtra detalle interno al cliente
	apiErr = FromErr(errors.New("connection refused to mongodb://secret"), "could not create product")
	assert.Equal(t, CodeInternal, apiErr.Code)
	assert.Equal(t, "could not create product", apiErr.Message)
}
