package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/models"
)

func TestCreateBillEndpoint(t *testing.T) {
	env := setupEnv(t)
	itemA, itemB := seedTestCatalog(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{
			{"item": itemA.ID, "quantity": 2},
			{"item": itemB.ID},
		},
		"discount": 20,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["status"])
	assert.Equal(t, "Bill created successfully", body["message"])
	assert.Nil(t, body["error"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "VANS0001", data["bill_id"])
	assert.Equal(t, 250.0, data["subTotal"])
	assert.Equal(t, 230.0, data["grandTotal"])
	assert.Equal(t, "cash", data["paymentMethod"])
	assert.Len(t, data["items"], 2)
}

func TestCreateBillEndpointRecordsActorAsCreator(t *testing.T) {
	env := setupEnv(t)
	itemA, _ := seedTestCatalog(t, env.db)
	env.actor = seedTestUser(t, env.db, "7000000001", models.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"item": itemA.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var bill models.Bill
	require.NoError(t, env.db.Where("bill_id = ?", "VANS0001").First(&bill).Error)
	require.NotNil(t, bill.CreatedBy)
	assert.Equal(t, env.actor.ID, *bill.CreatedBy)
}

func TestCreateBillEndpointValidation(t *testing.T) {
	env := setupEnv(t)
	seedTestCatalog(t, env.db)

	// Missing phone fails binding before the service is reached.
	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"items": []gin.H{{"item": 1}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["status"])
	assert.Nil(t, body["data"])
	assert.NotNil(t, body["error"])

	// Empty items list fails the min=1 rule.
	w = env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBillEndpointUnknownItem(t *testing.T) {
	env := setupEnv(t)
	seedTestCatalog(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"item": 9999, "quantity": 1}},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["status"])
}

func TestDeleteBillEndpointMissing(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/bills/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["status"])
	assert.NotNil(t, body["error"])
}

func TestDeleteBillEndpointInvalidID(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/bills/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBillByBillIdEndpoint(t *testing.T) {
	env := setupEnv(t)
	itemA, _ := seedTestCatalog(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"item": itemA.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/bills/id/VANS0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "VANS0001", data["bill_id"])
	assert.Len(t, data["items"], 1)

	w = env.do(t, http.MethodGet, "/api/v1/bills/id/VANS9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBillStatusEndpoint(t *testing.T) {
	env := setupEnv(t)
	itemA, _ := seedTestCatalog(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"item": itemA.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	id := int(data["id"].(float64))

	w = env.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bills/%d/status", id), gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "cancelled", updated["status"])

	w = env.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bills/%d/status", id), gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllBillsEndpointPagination(t *testing.T) {
	env := setupEnv(t)
	itemA, _ := seedTestCatalog(t, env.db)

	for i := 0; i < 5; i++ {
		w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
			"phone": fmt.Sprintf("900000000%d", i),
			"items": []gin.H{{"item": itemA.ID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/v1/bills/all?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["status"])
	assert.Equal(t, float64(5), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(3), body["pages"])
	assert.Len(t, body["data"], 2)

	// The last page holds the remainder.
	w = env.do(t, http.MethodGet, "/api/v1/bills/all?page=3&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)
}

func TestGetBillsByUserPhoneEndpoint(t *testing.T) {
	env := setupEnv(t)
	itemA, _ := seedTestCatalog(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/bills", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"item": itemA.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/bills/user?phone=9876543210", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = env.do(t, http.MethodGet, "/api/v1/bills/user?phone=1112223334", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUserByPhoneEndpoint(t *testing.T) {
	env := setupEnv(t)
	seedTestUser(t, env.db, "9876543210", models.RoleUser)
	seedTestUser(t, env.db, "9876999999", models.RoleUser)
	seedTestUser(t, env.db, "7000000001", models.RoleUser)

	w := env.do(t, http.MethodGet, "/api/v1/bills/users/search?phone=9876", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)
}
