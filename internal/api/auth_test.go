package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":      "chef@example.com",
		"username":   "chef",
		"first_name": "Julia",
		"last_name":  "Child",
		"password":   "s3cretpass",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupAPITest(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "chef@example.com", user["email"])
	assert.Equal(t, "chef", user["username"])
}

func TestRegisterDuplicate(t *testing.T) {
	env := setupAPITest(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	payload := registerPayload()
	payload["username"] = "otherchef"
	w = env.do(t, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	env := setupAPITest(t)

	payload := registerPayload()
	payload["email"] = "not-an-email"
	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := setupAPITest(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "chef@example.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "chef@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
