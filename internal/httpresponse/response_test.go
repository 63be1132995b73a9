package httpresponse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusOK, map[string]int{"pos": 40})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status":200,"Body":{"pos":40}}`, rec.Body.String())
}

func TestWriteErrorWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorWithStatus(rec, http.StatusConflict, "not your turn")

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp Response[ErrorResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "not your turn", resp.Body.ErrorDescription)
}

func TestUnencodableBodyIsInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusOK, func() {})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, INTERNALERRORJSON, rec.Body.String())
}
