package handlers

import (
	"net/http"

	"clinicore/models"
	"clinicore/services/user"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes back-office account endpoints.
type UserHandler struct {
	Service user.UserService
}

// RegisterUserHandler handles POST /users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name        string      `json:"name" binding:"required"`
		Email       string      `json:"email" binding:"required,email"`
		Password    string      `json:"password" binding:"required"`
		Role        models.Role `json:"role" binding:"required"`
		TherapistID string      `json:"therapistId,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.Service.Register(models.User{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		TherapistID: req.TherapistID,
	}, req.Password)
	if err != nil {
		logger.Error("Failed to register account", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, account)
}

// LoginHandler handles POST /users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login rejected", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account, "token": token})
}

// ChangePasswordHandler handles PUT /users/:id/password.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ChangePassword(c.Param("id"), req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed, please log in again"})
}

// RevokeHandler handles DELETE /users/:id/session.
func (h *UserHandler) RevokeHandler(c *gin.Context) {
	if err := h.Service.Revoke(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

// GetUserHandler handles GET /users/:id.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	account, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}

// ListUsersHandler handles GET /users.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	accounts, err := h.Service.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// SetUserActiveHandler handles PUT /users/:id/active.
func (h *UserHandler) SetUserActiveHandler(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SetActive(c.Param("id"), req.Active); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account updated"})
}

// DeleteUserHandler handles DELETE /users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.Service.Delete(id); err != nil {
		logger.Error("Failed to delete account", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
