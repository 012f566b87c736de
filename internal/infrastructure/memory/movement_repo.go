package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos de inventario en memoria. No toca el stock.
type MovementRepo struct {
	sc scope
}

// NewMovementRepository construye el repositorio fuera de transacción.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{sc: scope{s: s}}
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkMovementRefs(t, m); err != nil {
			return err
		}
		t.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.sc.read(func(t *tables) {
		if m, ok := t.movements[id]; ok {
			out = withMovementNames(t, m)
		}
	})
	return out, nil
}

func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.movements[m.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkMovementRefs(t, m); err != nil {
			return err
		}
		next := *m
		next.CreatedAt = cur.CreatedAt
		t.movements[m.ID] = next
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	r.sc.read(func(t *tables) {
		for _, m := range t.movements {
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Kind != "" && m.Kind != f.Kind {
				continue
			}
			if f.From != nil && m.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && m.Date.After(*f.To) {
				continue
			}
			list = append(list, withMovementNames(t, m))
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r *MovementRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.movements, id)
		return nil
	})
}

func checkMovementRefs(t *tables, m *entity.Movement) error {
	if _, ok := t.products[m.ProductID]; !ok {
		return fmt.Errorf("producto %s: %w", m.ProductID, domain.ErrNotFound)
	}
	if m.EmployeeID != "" {
		if _, ok := t.employees[m.EmployeeID]; !ok {
			return fmt.Errorf("empleado %s: %w", m.EmployeeID, domain.ErrNotFound)
		}
	}
	return nil
}

func withMovementNames(t *tables, m entity.Movement) *entity.Movement {
	m.ProductName = t.products[m.ProductID].Name
	m.EmployeeName = ""
	if e, ok := t.employees[m.EmployeeID]; ok {
		u := t.users[e.UserID]
		m.EmployeeName = u.FullName()
	}
	return &m
}
