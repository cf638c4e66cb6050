package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujatha-boutique/storefront/pkg/auth"
)

func postLogin(t *testing.T, h *Handler, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("boutique-admin")
	require.NoError(t, err)
	handler := NewHandler(hash)

	t.Run("correct password yields a valid admin token", func(t *testing.T) {
		rec := postLogin(t, handler, "boutique-admin")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Token   string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		claims, err := auth.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postLogin(t, handler, "guess")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured hash refuses logins", func(t *testing.T) {
		rec := postLogin(t, NewHandler(""), "anything")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
