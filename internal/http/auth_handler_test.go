package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	User struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func TestRegisterThenLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "new@client.test",
		"password": "long enough",
		"name":     "New Client",
		"role":     "client",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "new@client.test", registered.User.Email)
	assert.NotContains(t, rec.Body.String(), "long enough")

	rec = ts.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "new@client.test",
		"password": "long enough",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var logged authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logged))
	assert.Equal(t, registered.User.ID, logged.User.ID)

	// The issued token works against a protected route.
	rec = ts.do(t, http.MethodGet, "/projects/10", logged.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginBadPassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "new@client.test",
		"password": "long enough",
		"name":     "New Client",
		"role":     "client",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "new@client.test",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "boss@admin.test",
		"password": "long enough",
		"name":     "Boss",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
