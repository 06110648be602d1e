package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pos-backend/internal/models"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Failed to create category", err)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Category with this name already exists", err)
			return
		}
		respondError(c, http.StatusBadRequest, "Failed to create category", err)
		return
	}
	respondOK(c, http.StatusCreated, category, "Category created successfully")
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found", errors.New("no category with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Failed to update category", err)
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ParentID = req.ParentID
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Category with this name already exists", err)
			return
		}
		respondError(c, http.StatusBadRequest, "Failed to update category", err)
		return
	}
	respondOK(c, http.StatusOK, category, "Category updated successfully")
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found", errors.New("no category with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}
	respondOK(c, http.StatusOK, category, "Category deleted successfully")
}

func (h *CategoryHandler) GetCategoryById(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.Preload("Parent").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found", errors.New("no category with this ID"))
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch category", err)
		return
	}
	respondOK(c, http.StatusOK, category, "Category fetched successfully")
}

func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories := []models.Category{}
	query := h.db.Preload("Parent").Order("name asc")
	if c.Query("activeOnly") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}
	respondOK(c, http.StatusOK, categories, "Categories fetched successfully")
}
