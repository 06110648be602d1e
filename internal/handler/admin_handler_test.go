package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/models"
)

func TestAdminCreateUserEndpoint(t *testing.T) {
	env := setupEnv(t)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/admin/create-user", gin.H{
		"name":  "New Cashier",
		"email": "cashier@example.com",
		"phone": "9876543210",
		"roles": "user",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "user", user["roles"])
	assert.Contains(t, user["user_id"], "USR-")
}

func TestAdminCreateUserDefaultsRole(t *testing.T) {
	env := setupEnv(t)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/admin/create-user", gin.H{
		"name":  "New Cashier",
		"email": "cashier@example.com",
		"phone": "9876543210",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decodeBody(t, w)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "user", user["roles"])
}

func TestAdminCreateUserInvalidRole(t *testing.T) {
	env := setupEnv(t)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/admin/create-user", gin.H{
		"name":  "New Cashier",
		"email": "cashier@example.com",
		"phone": "9876543210",
		"roles": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminCannotGrantHigherRole(t *testing.T) {
	env := setupEnv(t)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/admin/create-user", gin.H{
		"name":  "Aspiring Dev",
		"email": "dev@example.com",
		"phone": "9876543210",
		"roles": "developer",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["status"])
}

func TestAdminCreateUserDuplicate(t *testing.T) {
	env := setupEnv(t)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)
	seedTestUser(t, env.db, "9876543210", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/v1/admin/create-user", gin.H{
		"name":  "Duplicate",
		"email": "dup@example.com",
		"phone": "9876543210",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["message"])
}
