package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/internal/slug"
)

// SlugMode indica qué hacer si el slug ya está ocupado.
type SlugMode int

const (
	// SlugExact falla con ErrDuplicateSlug.
	SlugExact SlugMode = iota
	// SlugDisambiguate agrega -1, -2, ... hasta encontrar uno libre.
	SlugDisambiguate
)

// insertRetries cubre la carrera entre la búsqueda del sufijo y el insert.
const insertRetries = 3

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// EnsureIndexes crea el índice único de slug.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	})
	return err
}

// Create crea un nuevo producto
func (r *ProductRepository) Create(ctx context.Context, product *models.Product, mode SlugMode) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Slug == "" {
		product.Slug = product.ID.Hex()
	}

	base := product.Slug
	for attempt := 0; ; attempt++ {
		if mode == SlugDisambiguate {
			s, err := r.resolveSlug(ctx, base, primitive.NilObjectID)
			if err != nil {
				return err
			}
			product.Slug = s
		}

		_, err := r.collection.InsertOne(ctx, product)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		if mode == SlugExact || attempt+1 >= insertRetries {
			return ErrDuplicateSlug
		}
	}
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// FindBySlug obtiene un producto por slug
func (r *ProductRepository) FindBySlug(ctx context.Context, s string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"slug": s})
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// Find devuelve una ventana de productos ordenada por _id, que sigue el
// orden de inserción.
func (r *ProductRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count cuenta los productos que cumplen el filtro.
func (r *ProductRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, filter)
}

// Replace reemplaza todos los campos editables y devuelve el documento nuevo.
// Si review es nil se conserva el valor guardado.
func (r *ProductRepository) Replace(ctx context.Context, id string, product *models.Product, review *int, mode SlugMode) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if product.Slug == "" {
		product.Slug = objID.Hex()
	}

	base := product.Slug
	for attempt := 0; ; attempt++ {
		if mode == SlugDisambiguate {
			s, err := r.resolveSlug(ctx, base, objID)
			if err != nil {
				return nil, err
			}
			product.Slug = s
		}

		set := bson.M{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"category":    product.Category,
			"image_path":  product.Image,
			"updated_at":  time.Now().UTC(),
		}
		if review != nil {
			set["review"] = *review
		}

		var updated models.Product
		err := r.collection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": objID},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		switch {
		case err == nil:
			return &updated, nil
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case !mongo.IsDuplicateKeyError(err):
			return nil, err
		case mode == SlugExact || attempt+1 >= insertRetries:
			return nil, ErrDuplicateSlug
		}
	}
}

// Delete elimina el producto definitivamente.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll borra la colección y carga products. Lo usa el seeding.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		if products[i].Slug == "" {
			products[i].Slug = products[i].ID.Hex()
		}
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs[i] = products[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

func (r *ProductRepository) resolveSlug(ctx context.Context, base string, self primitive.ObjectID) (string, error) {
	return slug.Unique(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return r.slugTaken(ctx, candidate, self)
	})
}

func (r *ProductRepository) slugTaken(ctx context.Context, candidate string, self primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": candidate}
	if !self.IsZero() {
		filter["_id"] = bson.M{"$ne": self}
	}

	err := r.collection.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, err
	}
}
