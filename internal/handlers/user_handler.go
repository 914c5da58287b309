package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type UserHandler struct {
	users      UserStore
	bcryptCost int
	log        *zap.Logger
}

func NewUserHandler(users UserStore, bcryptCost int, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, bcryptCost: bcryptCost, log: log}
}

// ListUsers devuelve todos los usuarios sin contraseña
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser actualiza un usuario. La contraseña solo se rehashea si viene.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var in models.UserUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hash string
	if in.Password != "" {
		var err error
		hash, err = auth.HashPassword(in.Password, h.bcryptCost)
		if errors.Is(err, auth.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordTooLong})
			return
		}
		if err != nil {
			h.log.Error("hash password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
			return
		}
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), in, hash)
	if err != nil {
		h.writeStoreError(c, err, "update user failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser borra el usuario
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeStoreError(c, err, "delete user failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) writeStoreError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
	case errors.Is(err, repository.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	default:
		h.log.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
	}
}
