// Package handlers expone el catálogo, la autenticación y los usuarios por HTTP.
package handlers

//go:generate mockgen -destination=mocks_test.go -package=handlers . ProductStore,CatalogLister,UserStore,ImageSaver,Pinger

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

type ProductStore interface {
	Create(ctx context.Context, product *models.Product, mode repository.SlugMode) error
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Replace(ctx context.Context, id string, product *models.Product, review *int, mode repository.SlugMode) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type CatalogLister interface {
	List(ctx context.Context, q catalog.Query) (*models.ProductPage, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate, passwordHash string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ImageSaver interface {
	Save(ctx context.Context, field string, fh *multipart.FileHeader) (models.ImageRef, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	errServer          = "Server error"
	errPasswordTooLong = "password must be at most 72 bytes"
)

// publish envía el evento sin afectar la respuesta.
func publish(c *gin.Context, pub events.Publisher, log *zap.Logger, e events.Event) {
	if err := pub.Publish(c.Request.Context(), e); err != nil {
		log.Warn("publish event failed", zap.String("type", e.Type), zap.String("subject", e.Subject), zap.Error(err))
	}
}

// uploadError traduce los errores de validación de archivos a 400.
func uploadError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
	case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("store upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
	}
}

// formFile devuelve nil si el campo no vino en el formulario.
func formFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
