package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var (
	_ repository.CategoryRepository   = (*CategoryRepo)(nil)
	_ repository.CollectionRepository = (*CollectionRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	sc scope
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{sc: scope{s: s}}
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.sc.write(func(t *tables) error {
		for _, other := range t.categories {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.sc.read(func(t *tables) {
		if c, ok := t.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range t.categories {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		t.categories[c.ID] = next
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	r.sc.read(func(t *tables) {
		for _, c := range t.categories {
			c := c
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, p := range t.products {
			if p.CategoryID == id {
				return domain.ErrInUse
			}
		}
		delete(t.categories, id)
		return nil
	})
}

// CollectionRepo colecciones en memoria.
type CollectionRepo struct {
	sc scope
}

// NewCollectionRepository construye el repositorio.
func NewCollectionRepository(s *Store) *CollectionRepo {
	return &CollectionRepo{sc: scope{s: s}}
}

func (r *CollectionRepo) Create(_ context.Context, c *entity.Collection) error {
	return r.sc.write(func(t *tables) error {
		for _, other := range t.collections {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		t.collections[c.ID] = *c
		return nil
	})
}

func (r *CollectionRepo) GetByID(_ context.Context, id string) (*entity.Collection, error) {
	var out *entity.Collection
	r.sc.read(func(t *tables) {
		if c, ok := t.collections[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CollectionRepo) Update(_ context.Context, c *entity.Collection) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.collections[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range t.collections {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		t.collections[c.ID] = next
		return nil
	})
}

func (r *CollectionRepo) List(_ context.Context) ([]*entity.Collection, error) {
	var list []*entity.Collection
	r.sc.read(func(t *tables) {
		for _, c := range t.collections {
			c := c
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Delete deja sin colección a los productos que la usaban.
func (r *CollectionRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.collections[id]; !ok {
			return domain.ErrNotFound
		}
		for pid, p := range t.products {
			if p.CollectionID == id {
				p.CollectionID = ""
				t.products[pid] = p
			}
		}
		delete(t.collections, id)
		return nil
	})
}
