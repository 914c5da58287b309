package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/slug"
)

type ProductHandler struct {
	store    ProductStore
	catalog  CatalogLister
	uploader ImageSaver
	events   events.Publisher
	limits   catalog.Limits
	log      *zap.Logger
}

func NewProductHandler(store ProductStore, lister CatalogLister, uploader ImageSaver, pub events.Publisher, limits catalog.Limits, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		store:    store,
		catalog:  lister,
		uploader: uploader,
		events:   pub,
		limits:   limits,
		log:      log,
	}
}

// ListProducts lista productos con filtros por nombre y review, paginado
func (h *ProductHandler) ListProducts(c *gin.Context) {
	q, err := catalog.ParseQuery(
		c.Query("name"),
		c.Query("review"),
		c.Query("page"),
		c.Query("limit"),
		h.limits,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProductBySlug obtiene un producto por slug
func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.store.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeStoreError(c, err, "get product failed")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct crea un nuevo producto. El review siempre arranca en 0.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := in.Product()
	product.Review = 0
	var mode repository.SlugMode
	product.Slug, mode = slugFor(in)

	if err := h.store.Create(c.Request.Context(), &product, mode); err != nil {
		h.writeStoreError(c, err, "create product failed")
		return
	}

	publish(c, h.events, h.log, events.New(events.ProductCreated, product.ID.Hex(), gin.H{"slug": product.Slug}))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct reemplaza los campos editables de un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := in.Product()
	var mode repository.SlugMode
	product.Slug, mode = slugFor(in)

	updated, err := h.store.Replace(c.Request.Context(), c.Param("id"), &product, in.Review, mode)
	if err != nil {
		h.writeStoreError(c, err, "update product failed")
		return
	}

	publish(c, h.events, h.log, events.New(events.ProductUpdated, updated.ID.Hex(), gin.H{"slug": updated.Slug}))
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct borra el producto definitivamente
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.writeStoreError(c, err, "delete product failed")
		return
	}

	publish(c, h.events, h.log, events.New(events.ProductDeleted, id, nil))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// UploadImage guarda la imagen del campo "image" y devuelve su image_path
func (h *ProductHandler) UploadImage(c *gin.Context) {
	ref, err := h.uploader.Save(c.Request.Context(), "image", formFile(c, "image"))
	if err != nil {
		uploadError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_path": ref})
}

// slugFor decide el slug y cómo resolver colisiones: uno explícito debe ser
// único tal cual, uno derivado del nombre se desambigua con sufijos.
func slugFor(in models.ProductInput) (string, repository.SlugMode) {
	if explicit := slug.Make(in.Slug); explicit != "" {
		return explicit, repository.SlugExact
	}
	return slug.Make(in.Name), repository.SlugDisambiguate
}

func (h *ProductHandler) writeStoreError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
	case errors.Is(err, repository.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errServer})
	}
}
