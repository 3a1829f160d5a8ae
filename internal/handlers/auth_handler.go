package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/response"
	"github.com/Manohar-jami/Job-Portal-Api/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(a *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: a}
}

// Register is the POST /register/ endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.AuthService.Register(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

// Login is the POST /login/ endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	pair, err := h.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh is the POST /token/refresh/ endpoint
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dtos.RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	access, err := h.AuthService.RefreshAccess(c.Request.Context(), req.Refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
