package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	sc scope
}

// NewClientRepository construye el repositorio.
func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{sc: scope{s: s}}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		t.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.sc.read(func(t *tables) {
		if c, ok := t.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	var list []*entity.Client
	name := strings.ToLower(strings.TrimSpace(f.Name))
	r.sc.read(func(t *tables) {
		for _, c := range t.clients {
			if !f.IncludeInactive && !c.Active {
				continue
			}
			if name != "" && !strings.Contains(strings.ToLower(c.Name), name) {
				continue
			}
			if f.Type != "" && c.Type != f.Type {
				continue
			}
			c := c
			list = append(list, &c)
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

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *c
		next.RegisteredAt = cur.RegisteredAt
		t.clients[c.ID] = next
		return nil
	})
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.clients[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.clients, id)
		return nil
	})
}
