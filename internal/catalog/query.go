// Package catalog arma las consultas del listado de productos: filtro por
// nombre, filtro por review y paginación por offset.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"storefront/internal/models"
)

var ErrInvalidReview = errors.New("review must be an integer between 0 and 10")

// Limits define el tamaño de página por defecto y el máximo aceptado.
type Limits struct {
	Default int
	Max     int
}

var DefaultLimits = Limits{Default: 12, Max: 100}

// Query es la consulta ya validada. Review nil significa "sin filtro", que
// no es lo mismo que review = 0.
type Query struct {
	Name   string
	Review *int
	Page   int
	Limit  int
}

// ParseQuery interpreta los parámetros crudos de la URL. Page y limit
// inválidos caen a sus valores por defecto; un review inválido es error.
func ParseQuery(name, review, page, limit string, lim Limits) (Query, error) {
	q := Query{
		Name:  strings.TrimSpace(name),
		Page:  1,
		Limit: lim.Default,
	}

	if p, err := strconv.Atoi(page); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(limit); err == nil && l > 0 {
		q.Limit = l
	}
	if lim.Max > 0 && q.Limit > lim.Max {
		q.Limit = lim.Max
	}
	// El offset (page-1)*limit tiene que entrar en un int64.
	if q.Limit > 0 && int64(q.Page) > math.MaxInt64/int64(q.Limit) {
		q.Page = int(math.MaxInt64 / int64(q.Limit))
	}

	if review = strings.TrimSpace(review); review != "" {
		r, err := strconv.Atoi(review)
		if err != nil || r < models.MinReview || r > models.MaxReview {
			return Query{}, fmt.Errorf("%w: %q", ErrInvalidReview, review)
		}
		q.Review = &r
	}
	return q, nil
}

// Filter compone el filtro de MongoDB. El nombre se busca como substring
// literal sin distinguir mayúsculas.
func (q Query) Filter() bson.M {
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Name), "$options": "i"}
	}
	if q.Review != nil {
		filter["review"] = *q.Review
	}
	return filter
}

// Skip es el offset de la página: (page-1)*limit.
func (q Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}
