package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", InvalidInputf("bad offset %q", "x"), http.StatusBadRequest},
		{"not found", NotFoundf("no concept %s", "EC:1"), http.StatusNotFound},
		{"unauthorized", Wrap(ErrUnauthorized, "token"), http.StatusUnauthorized},
		{"upstream", Upstream(New("connection refused"), "sparql query"), http.StatusBadGateway},
		{"app error", NewAppError(http.StatusTeapot, "teapot", nil), http.StatusTeapot},
		{"unknown", New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.Nil(t, Upstream(nil, "ignored"))
}

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "Missing id", New("empty"))
	assert.Equal(t, "Missing id: empty", err.Error())
	assert.Equal(t, "Missing id", NewAppError(http.StatusBadRequest, "Missing id", nil).Error())
}
