package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
)

// TokenIssuer firma el token que se entrega en el login.
type TokenIssuer interface {
	Issue(userID string, role int) (auth.Token, error)
}

type AuthHandler struct {
	users      UserStore
	tokens     TokenIssuer
	uploader   ImageSaver
	events     events.Publisher
	bcryptCost int
	log        *zap.Logger
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, uploader ImageSaver, pub events.Publisher, bcryptCost int, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		tokens:     tokens,
		uploader:   uploader,
		events:     pub,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// loginUser es la vista del usuario que recibe el cliente al iniciar sesión.
type loginUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	StatusID     int    `json:"status_id"`
	RoleID       int    `json:"role_id"`
	ProfileImage string `json:"profileImage"`
}

type loginResponse struct {
	Message   string    `json:"message"`
	User      loginUser `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register crea un cliente activo. El rol y el estado los fija el servidor.
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(in.Password, h.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordTooLong})
		return
	}
	if err != nil {
		h.log.Error("hash password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Password:     hash,
		StatusID:     models.StatusActive,
		RoleID:       models.RoleCustomer,
		ProfileImage: in.ProfileImage,
	}
	if user.ProfileImage == "" {
		user.ProfileImage = models.DefaultProfileImage
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		h.log.Error("register user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}

	publish(c, h.events, h.log, events.New(events.UserRegistered, user.ID.Hex(), gin.H{"email": user.Email}))
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login valida credenciales y entrega el usuario junto con un token firmado.
// Email desconocido y contraseña incorrecta responden igual.
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.log.Error("find user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}
	if !auth.VerifyPassword(user.Password, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is deactivated"})
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.RoleID)
	if err != nil {
		h.log.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}

	profile := user.ProfileImage
	if profile == "" {
		profile = models.DefaultProfileImage
	}
	c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User: loginUser{
			ID:           user.ID.Hex(),
			Name:         user.Name,
			Email:        user.Email,
			StatusID:     user.StatusID,
			RoleID:       user.RoleID,
			ProfileImage: profile,
		},
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}

// Logout solo confirma; el cliente descarta su token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// UploadProfileImage guarda el campo "profileImage" y devuelve el nombre
// relativo que se guarda en el usuario.
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	ref, err := h.uploader.Save(c.Request.Context(), "profileImage", formFile(c, "profileImage"))
	if err != nil {
		uploadError(c, h.log, err)
		return
	}

	filename := ref.Path
	if ref.Kind == models.ImageStored {
		filename = strings.TrimPrefix(strings.TrimPrefix(filename, "/"), "public/")
	}
	c.JSON(http.StatusOK, gin.H{"filename": filename})
}
