package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	sc scope
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{sc: scope{s: s}}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkProductRefs(t, p); err != nil {
			return err
		}
		t.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.sc.read(func(t *tables) {
		if p, ok := t.products[id]; ok {
			out = withProductNames(t, p)
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: la transacción en memoria ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkProductRefs(t, p); err != nil {
			return err
		}
		next := *p
		next.Stock = cur.Stock
		next.CreatedAt = cur.CreatedAt
		t.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int, at time.Time) error {
	return r.sc.write(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock = stock
		p.UpdatedAt = at
		t.products[id] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	r.sc.read(func(t *tables) {
		name := strings.ToLower(strings.TrimSpace(f.Name))
		for _, p := range t.products {
			if !f.IncludeInactive && !p.Active {
				continue
			}
			if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
				continue
			}
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.CollectionID != "" && p.CollectionID != f.CollectionID {
				continue
			}
			if f.PriceMin != nil && p.UnitPrice.LessThan(*f.PriceMin) {
				continue
			}
			if f.PriceMax != nil && p.UnitPrice.GreaterThan(*f.PriceMax) {
				continue
			}
			if f.StockMin != nil && p.Stock < *f.StockMin {
				continue
			}
			if f.StockMax != nil && p.Stock > *f.StockMax {
				continue
			}
			if f.LowStock && !p.LowStock() {
				continue
			}
			list = append(list, withProductNames(t, p))
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

// Delete falla con ErrInUse si el producto tiene movimientos o líneas de venta.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, m := range t.movements {
			if m.ProductID == id {
				return domain.ErrInUse
			}
		}
		for _, s := range t.sales {
			for _, l := range s.Lines {
				if l.ProductID == id {
					return domain.ErrInUse
				}
			}
		}
		delete(t.products, id)
		return nil
	})
}

func checkProductRefs(t *tables, p *entity.Product) error {
	if _, ok := t.categories[p.CategoryID]; !ok {
		return fmt.Errorf("categoría %s: %w", p.CategoryID, domain.ErrNotFound)
	}
	if p.CollectionID != "" {
		if _, ok := t.collections[p.CollectionID]; !ok {
			return fmt.Errorf("colección %s: %w", p.CollectionID, domain.ErrNotFound)
		}
	}
	return nil
}

func withProductNames(t *tables, p entity.Product) *entity.Product {
	p.CategoryName = t.categories[p.CategoryID].Name
	p.CollectionName = ""
	if p.CollectionID != "" {
		p.CollectionName = t.collections[p.CollectionID].Name
	}
	return &p
}
