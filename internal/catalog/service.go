package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
)

// Finder es la parte del Product Store que usa el listado.
type Finder interface {
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type Service struct {
	finder Finder
	log    *zap.Logger
}

func NewService(finder Finder, log *zap.Logger) *Service {
	return &Service{finder: finder, log: log}
}

// List devuelve la página pedida. La ventana y el total se consultan en
// paralelo con el mismo filtro.
func (s *Service) List(ctx context.Context, q Query) (*models.ProductPage, error) {
	filter := q.Filter()

	var (
		products []models.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.finder.Find(gctx, filter, q.Skip(), int64(q.Limit))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.finder.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.log.Debug("catalog page",
		zap.String("name", q.Name),
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.Int("returned", len(products)),
		zap.Int64("total", total),
	)

	return &models.ProductPage{
		Products: products,
		Page:     q.Page,
		Limit:    q.Limit,
		Total:    total,
		HasMore:  q.Skip()+int64(len(products)) < total,
	}, nil
}
