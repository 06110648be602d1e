package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SignupRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name, email, phone are required", err)
		return
	}

	if err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Phone); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"tempUser": gin.H{"name": req.Name, "email": req.Email, "phone": req.Phone},
	}, "OTP sent for signup. Please verify.")
}

type VerifySignupRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
	Otp   string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifySignup(c *gin.Context) {
	var req VerifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "all fields required", err)
		return
	}

	user, token, err := h.svc.VerifySignup(c.Request.Context(), req.Name, req.Email, req.Phone, req.Otp)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"token": token, "user": user}, "Signup verified")
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "phone is required", err)
		return
	}

	if err := h.svc.Login(c.Request.Context(), req.Phone); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "OTP sent for login")
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" binding:"required"`
	Otp   string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "phone and otp are required", err)
		return
	}

	user, token, err := h.svc.VerifyLogin(c.Request.Context(), req.Phone, req.Otp)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"token": token, "user": user}, "Login verified")
}
