package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pos-backend/internal/models"
)

type ItemHandler struct {
	db *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

type ItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	SKU         string   `json:"sku"`
	Tags        string   `json:"tags"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Failed to create item", err)
		return
	}

	item := models.Item{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       *req.Price,
		SKU:         req.SKU,
		Tags:        req.Tags,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Item with this SKU already exists", err)
			return
		}
		respondError(c, http.StatusBadRequest, "Failed to create item", err)
		return
	}
	respondOK(c, http.StatusCreated, item, "Item created successfully")
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", errors.New("no item with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update item", err)
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Failed to update item", err)
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.CategoryID = req.CategoryID
	item.Price = *req.Price
	item.SKU = req.SKU
	item.Tags = req.Tags
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.db.Save(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Item with this SKU already exists", err)
			return
		}
		respondError(c, http.StatusBadRequest, "Failed to update item", err)
		return
	}
	respondOK(c, http.StatusOK, item, "Item updated successfully")
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", errors.New("no item with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}
	respondOK(c, http.StatusOK, item, "Item deleted successfully")
}

func (h *ItemHandler) GetItemById(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", errors.New("no item with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch item", err)
		return
	}
	respondOK(c, http.StatusOK, item, "Item fetched successfully")
}

func (h *ItemHandler) GetAllItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	sortBy := c.DefaultQuery("sortBy", "created_at")
	switch sortBy {
	case "created_at", "name", "price":
	default:
		sortBy = "created_at"
	}
	order := "desc"
	if c.Query("order") == "asc" {
		order = "asc"
	}

	query := h.db.Model(&models.Item{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if c.Query("activeOnly") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch items", err)
		return
	}

	items := []models.Item{}
	if err := query.Session(&gorm.Session{}).Preload("Category").Order(sortBy + " " + order).
		Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch items", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  1,
		"data":    items,
		"total":   total,
		"page":    page,
		"pages":   int(math.Ceil(float64(total) / float64(limit))),
		"message": "Items fetched successfully",
		"error":   nil,
	})
}

func (h *ItemHandler) SearchItems(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, http.StatusBadRequest, "Search query is required", errors.New("missing query parameter"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	like := "%" + q + "%"
	items := []models.Item{}
	if err := h.db.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like).
		Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to search items", err)
		return
	}
	respondOK(c, http.StatusOK, items, "Items fetched successfully")
}

type RatingRequest struct {
	Rating *float64 `json:"rating" binding:"required,gte=0,lte=5"`
}

// AddRating folds a new review into the item's rating aggregate.
func (h *ItemHandler) AddRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Rating must be between 0 and 5", err)
		return
	}

	var item models.Item
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		count := item.ReviewsCount
		item.RatingAverage = (item.RatingAverage*float64(count) + *req.Rating) / float64(count+1)
		item.ReviewsCount = count + 1
		return tx.Save(&item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", errors.New("no item with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to add rating", err)
		return
	}
	respondOK(c, http.StatusOK, item, "Rating added successfully")
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID", errors.New("invalid ID format"))
		return 0, false
	}
	return uint(id), true
}
