package helpers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fabric struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	var p fabric
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"silk"}`), &p))
	assert.Equal(t, "silk", p.Name)

	assert.ErrorIs(t, DecodeJSON(strings.NewReader(""), &p), ErrEmptyBody)
	assert.ErrorIs(t, DecodeJSON(strings.NewReader(`{"name":"a"} {"name":"b"}`), &p), ErrTrailingData)
	assert.Error(t, DecodeJSON(strings.NewReader(`{"colour":"red"}`), &p))
}

func TestHttpError(t *testing.T) {
	rec := httptest.NewRecorder()
	HttpError(rec, 418, "teapot")
	assert.Equal(t, 418, rec.Code)
	assert.JSONEq(t, `{"error":"teapot"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
