// Package seed genera los lotes de productos y usuarios de ejemplo.
package seed

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/slug"
)

const (
	DefaultCount    = 50
	DefaultPassword = "0829"
	SampleImage     = "sample.image.jpg"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// Products arma n productos repitiendo los ítems del catálogo. Los slugs son
// únicos dentro del lote.
func Products(cat Catalog, n int, rng *rand.Rand) []models.Product {
	items := repeat(cat.Items, n)
	batch := slug.NewBatch()

	products := make([]models.Product, len(items))
	for i, it := range items {
		products[i] = models.Product{
			Name:        it.Name,
			Slug:        batch.Next(it.Name),
			Description: cat.Description(it),
			Price:       int64(rng.IntN(50)+10) * 100,
			Category:    it.Category,
			Review:      rng.IntN(models.MaxReview) + 1,
			Image:       models.StoredImage(SampleImage),
		}
	}
	return products
}

// Users arma n usuarios. El primero es admin y el segundo está desactivado.
func Users(names []string, n int, passwordHash string) []models.User {
	selected := repeat(names, n)
	emails := make(map[string]bool, len(selected))

	users := make([]models.User, len(selected))
	for i, name := range selected {
		u := models.User{
			Name:         name,
			Email:        uniqueEmail(name, emails),
			Password:     passwordHash,
			StatusID:     models.StatusActive,
			RoleID:       models.RoleCustomer,
			ProfileImage: models.DefaultProfileImage,
		}
		switch i {
		case 0:
			u.RoleID = models.RoleAdmin
		case 1:
			u.StatusID = models.StatusDeactivated
		}
		users[i] = u
	}
	return users
}

// EmailFor deriva el email de un nombre: minúsculas y solo alfanuméricos.
func EmailFor(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "") + "@example.com"
}

// uniqueEmail agrega un número al local part si el email ya salió en el lote.
func uniqueEmail(name string, used map[string]bool) string {
	email := EmailFor(name)
	local := strings.TrimSuffix(email, "@example.com")
	for i := 1; used[email]; i++ {
		email = local + strconv.Itoa(i) + "@example.com"
	}
	used[email] = true
	return email
}

// repeat repite items en orden hasta tener n elementos.
func repeat[T any](items []T, n int) []T {
	if len(items) == 0 || n <= 0 {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		out[i] = items[i%len(items)]
	}
	return out
}
