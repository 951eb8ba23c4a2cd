package cache

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/pos-close-by-tax/internal/domain/entity"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/repository"
)

// Asegura que TaxCache implementa repository.TaxRepository.
var _ repository.TaxRepository = (*TaxCache)(nil)

// TaxCache decora un TaxRepository con una caché en memoria con expiración.
// Solo se guardan aciertos; errores y resultados nil siempre van al origen.
type TaxCache struct {
	next  repository.TaxRepository
	items *gocache.Cache
}

// NewTaxCache construye la caché. ttl <= 0 desactiva la expiración.
func NewTaxCache(next repository.TaxRepository, ttl time.Duration) *TaxCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := 2 * ttl
	if ttl == gocache.NoExpiration {
		cleanup = 0
	}
	return &TaxCache{next: next, items: gocache.New(ttl, cleanup)}
}

// GetByID devuelve el impuesto desde caché o lo carga del repositorio decorado.
func (c *TaxCache) GetByID(ctx context.Context, id int64) (*entity.Tax, error) {
	key := cacheKey(id)
	if v, found := c.items.Get(key); found {
		t := v.(entity.Tax)
		return &t, nil
	}
	tax, err := c.next.GetByID(ctx, id)
	if err != nil || tax == nil {
		return nil, err
	}
	c.items.Set(key, *tax, gocache.DefaultExpiration)
	out := *tax
	return &out, nil
}

// Invalidate descarta un impuesto (p. ej. tras cambiar su tasa en el maestro).
func (c *TaxCache) Invalidate(id int64) {
	c.items.Delete(cacheKey(id))
}

// Flush vacía la caché.
func (c *TaxCache) Flush() {
	c.items.Flush()
}

func cacheKey(id int64) string {
	return "tax-" + strconv.FormatInt(id, 10)
}
