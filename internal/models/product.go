package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinReview = 0
	MaxReview = 10
)

// Product representa un producto en el catálogo
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Price       int64              `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Review      int                `json:"review" bson:"review"`
	Image       ImageRef           `json:"image_path" bson:"image_path"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductInput es el cuerpo de POST y PUT /api/products.
// Review solo se toma en cuenta en PUT.
type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"gte=0"`
	Category    string   `json:"category"`
	Review      *int     `json:"review" binding:"omitempty,min=0,max=10"`
	ImagePath   ImageRef `json:"image_path"`
}

// Product arma el documento a partir del input, sin slug ni review.
func (in ProductInput) Product() Product {
	return Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.ImagePath,
	}
}

// ProductPage es una ventana del listado paginado.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Total    int64     `json:"total"`
	HasMore  bool      `json:"has_more"`
}
