package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pos-backend/internal/models"
	"pos-backend/internal/service"
	"pos-backend/internal/utils"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

type CreateUserRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone" binding:"required"`
	Roles  string `json:"roles"`
}

// CreateUser provisions a user with an assigned role. An actor can only
// grant roles at or below their own level.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "user_id, name, email, and phone are required", err)
		return
	}

	role := models.RoleUser
	if req.Roles != "" {
		role = models.Role(req.Roles)
		if !role.Valid() {
			respondError(c, http.StatusBadRequest, "Invalid role", errors.New("unknown role "+req.Roles))
			return
		}
	}

	actor := currentActor(c)
	if actor != nil && !actor.Roles.AtLeast(role) {
		respondError(c, http.StatusForbidden, service.ErrForbiddenRole.Error(), service.ErrForbiddenRole)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "USR-" + uuid.NewString()
	}

	user := models.User{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Roles:  role,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "User already exists", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user, "token": token}, "User created successfully")
}
