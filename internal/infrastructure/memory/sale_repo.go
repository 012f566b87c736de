package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria; las líneas viven dentro del encabezado.
type SaleRepo struct {
	sc scope
}

// NewSaleRepository construye el repositorio fuera de transacción.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{sc: scope{s: s}}
}

// Create guarda solo el encabezado; las líneas se agregan con CreateLine.
func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := t.employees[s.EmployeeID]; !ok {
			return fmt.Errorf("empleado %s: %w", s.EmployeeID, domain.ErrNotFound)
		}
		head := *s
		head.Lines = nil
		t.sales[s.ID] = head
		return nil
	})
}

func (r *SaleRepo) CreateLine(_ context.Context, l *entity.SaleLine) error {
	return r.sc.write(func(t *tables) error {
		s, ok := t.sales[l.SaleID]
		if !ok {
			return fmt.Errorf("venta %s: %w", l.SaleID, domain.ErrNotFound)
		}
		if _, ok := t.products[l.ProductID]; !ok {
			return fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
		}
		s.Lines = append(append([]entity.SaleLine(nil), s.Lines...), *l)
		t.sales[l.SaleID] = s
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.sc.read(func(t *tables) {
		if s, ok := t.sales[id]; ok {
			out = withSaleNames(t, s, true)
		}
	})
	return out, nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	r.sc.read(func(t *tables) {
		for _, s := range t.sales {
			if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
				continue
			}
			if f.Channel != "" && s.Channel != f.Channel {
				continue
			}
			if f.From != nil && s.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && s.Date.After(*f.To) {
				continue
			}
			list = append(list, withSaleNames(t, s, false))
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

// Delete borra la venta con sus líneas. El stock no se restituye.
func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.sales, id)
		return nil
	})
}

func withSaleNames(t *tables, s entity.Sale, withLines bool) *entity.Sale {
	if e, ok := t.employees[s.EmployeeID]; ok {
		u := t.users[e.UserID]
		s.EmployeeName = u.FullName()
	}
	if !withLines {
		s.Lines = nil
		return &s
	}
	lines := make([]entity.SaleLine, len(s.Lines))
	for i, l := range s.Lines {
		l.ProductName = t.products[l.ProductID].Name
		lines[i] = l
	}
	s.Lines = lines
	return &s
}
