package client

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"storefront/internal/models"
)

// ErrStale indica que el filtro cambió mientras se pedía la página y la
// respuesta se descartó.
var ErrStale = errors.New("stale page discarded")

type Lister interface {
	ListProducts(ctx context.Context, p ListParams) (*models.ProductPage, error)
}

// Filter es lo que el usuario eligió. Name se aplica en el servidor y Review
// en el cliente sobre lo ya cargado.
type Filter struct {
	Name   string
	Review *int
}

// Feed mantiene el estado del scroll infinito. Cada cambio de filtro abre
// una nueva generación; las respuestas de generaciones anteriores se
// descartan.
type Feed struct {
	src   Lister
	limit int
	group singleflight.Group

	mu       sync.Mutex
	gen      uint64
	filter   Filter
	items    []models.Product
	nextPage int
	hasMore  bool
}

func NewFeed(src Lister, limit int) *Feed {
	return &Feed{src: src, limit: limit, nextPage: 1, hasMore: true}
}

// SetFilter vacía el feed y arranca una generación nueva.
func (f *Feed) SetFilter(filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.filter = filter
	f.items = nil
	f.nextPage = 1
	f.hasMore = true
}

// LoadMore pide la siguiente página y devuelve cuántos productos agregó.
// Llamadas concurrentes para la misma página comparten un solo request. El
// request no se corta cuando se cancela ctx: esa llamada deja de esperar
// pero las demás siguen recibiendo la página.
func (f *Feed) LoadMore(ctx context.Context) (int, error) {
	f.mu.Lock()
	if !f.hasMore {
		f.mu.Unlock()
		return 0, nil
	}
	gen, page, name := f.gen, f.nextPage, f.filter.Name
	f.mu.Unlock()

	key := strconv.FormatUint(gen, 10) + "/" + strconv.Itoa(page)
	fetchCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		if n, done, err := f.settled(gen, page); done {
			return n, err
		}
		res, err := f.src.ListProducts(fetchCtx, ListParams{Name: name, Page: page, Limit: f.limit})
		if err != nil {
			return 0, err
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen != gen {
			return 0, ErrStale
		}
		if f.nextPage != page {
			return 0, nil
		}
		f.items = append(f.items, res.Products...)
		f.nextPage = page + 1
		f.hasMore = res.HasMore
		return len(res.Products), nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return 0, r.Err
		}
		return r.Val.(int), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// settled indica si la página ya no hace falta: otra llamada la aplicó o
// cambió la generación.
func (f *Feed) settled(gen uint64, page int) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return 0, true, ErrStale
	}
	return 0, f.nextPage != page, nil
}

// Items devuelve todo lo cargado en la generación actual.
func (f *Feed) Items() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Product(nil), f.items...)
}

// Visible aplica el filtro de review sobre lo cargado.
func (f *Feed) Visible() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filter.Review == nil {
		return append([]models.Product(nil), f.items...)
	}
	out := make([]models.Product, 0, len(f.items))
	for _, p := range f.items {
		if p.Review == *f.filter.Review {
			out = append(out, p)
		}
	}
	return out
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}
