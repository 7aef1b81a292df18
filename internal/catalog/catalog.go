// Package catalog reads the purchasable items. The catalog is immutable
// from the client's perspective.
package catalog

import (
	"context"
	"fmt"

	"github.com/dkurbatovs/shopcart/internal/models"
	"github.com/dkurbatovs/shopcart/internal/store"
)

type Reader struct {
	store store.Client
}

func NewReader(st store.Client) *Reader {
	return &Reader{store: st}
}

// List returns every catalog item, sorted by name for stable display.
func (r *Reader) List(ctx context.Context) ([]models.Item, error) {
	rows, err := r.store.Select(ctx, "items", nil, store.OrderBy("name", false))
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	items := make([]models.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.Item{
			ID:          store.String(row, "id"),
			Name:        store.String(row, "name"),
			Description: store.String(row, "description"),
			Price:       store.Float(row, "price"),
			ImageURL:    store.String(row, "image_url"),
		})
	}
	return items, nil
}
