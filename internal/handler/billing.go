package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/internal/models"
	"pos-backend/internal/service"
)

type BillingHandler struct {
	svc *service.BillingService
}

func NewBillingHandler(svc *service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

type CreateBillRequest struct {
	Phone         string              `json:"phone" binding:"required"`
	Items         []service.LineInput `json:"items" binding:"required,min=1"`
	Discount      float64             `json:"discount"`
	PaymentMethod string              `json:"paymentMethod"`
	CreatedBy     *uint               `json:"createdBy"`
}

func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Phone and items are required", err)
		return
	}

	createdBy := req.CreatedBy
	if createdBy == nil {
		if actor := currentActor(c); actor != nil {
			createdBy = &actor.ID
		}
	}

	bill, err := h.svc.CreateBill(c.Request.Context(), service.CreateBillInput{
		Phone:         req.Phone,
		Items:         req.Items,
		Discount:      req.Discount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		CreatedBy:     createdBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, bill, "Bill created successfully")
}

type EditBillRequest struct {
	Items         []service.LineInput `json:"items"`
	Discount      *float64            `json:"discount"`
	PaymentMethod *string             `json:"paymentMethod"`
}

func (h *BillingHandler) EditBill(c *gin.Context) {
	id, ok := billRecordID(c)
	if !ok {
		return
	}

	var req EditBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := service.EditBillInput{Items: req.Items, Discount: req.Discount}
	if req.PaymentMethod != nil {
		method := models.PaymentMethod(*req.PaymentMethod)
		in.PaymentMethod = &method
	}

	bill, err := h.svc.EditBill(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bill, "Bill updated successfully")
}

func (h *BillingHandler) UpdateBillStatus(c *gin.Context) {
	id, ok := billRecordID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status", err)
		return
	}

	bill, err := h.svc.UpdateStatus(c.Request.Context(), id, models.BillStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bill, "Bill status updated")
}

func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id, ok := billRecordID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBill(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "Bill deleted successfully")
}

func (h *BillingHandler) GetBillByBillId(c *gin.Context) {
	bill, err := h.svc.GetByBillID(c.Request.Context(), c.Param("billId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bill, "Bill fetched")
}

func (h *BillingHandler) GetAllBills(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := models.BillStatus(c.Query("status"))

	result, err := h.svc.List(c.Request.Context(), status, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": 1,
		"data":   result.Bills,
		"total":  result.Total,
		"page":   result.Page,
		"pages":  result.Pages,
	})
}

func (h *BillingHandler) GetBillsByUserPhone(c *gin.Context) {
	bills, err := h.svc.BillsByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, bills, "Bills fetched")
}

func (h *BillingHandler) SearchUserByPhone(c *gin.Context) {
	users, err := h.svc.SearchUsersByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, users, "Users fetched")
}

// billRecordID parses the numeric bill record id from the path.
func billRecordID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid bill ID", err)
		return 0, false
	}
	return uint(id), true
}
