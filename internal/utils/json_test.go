package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveBody struct {
	Pos int `json:"pos"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/game/move", strings.NewReader(body))
}

func TestDecodeJSONRequest(t *testing.T) {
	var dst moveBody
	require.NoError(t, DecodeJSONRequest(request(`{"pos":40}`), &dst))
	assert.Equal(t, 40, dst.Pos)
}

func TestDecodeJSONRequestRejects(t *testing.T) {
	for name, body := range map[string]string{
		"empty":          "",
		"unknown field":  `{"pos":40,"color":"black"}`,
		"malformed":      `{"pos":`,
		"trailing value": `{"pos":1}{"pos":2}`,
		"wrong type":     `{"pos":"e5"}`,
	} {
		t.Run(name, func(t *testing.T) {
			var dst moveBody
			assert.Error(t, DecodeJSONRequest(request(body), &dst))
		})
	}
}
