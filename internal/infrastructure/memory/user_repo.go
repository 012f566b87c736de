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
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
)

// UserRepo cuentas en memoria.
type UserRepo struct {
	sc scope
}

// NewUserRepository construye el repositorio fuera de transacción.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{sc: scope{s: s}}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.sc.write(func(t *tables) error {
		for _, other := range t.users {
			if other.ID == u.ID || other.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		t.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.sc.read(func(t *tables) {
		if u, ok := t.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

// GetByEmail compara sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, nil
	}
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	var out *entity.User
	r.sc.read(func(t *tables) {
		for _, u := range t.users {
			if match(u) {
				u := u
				out = &u
				return
			}
		}
	})
	return out
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range t.users {
			if id != u.ID && other.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		next := *u
		next.CreatedAt = cur.CreatedAt
		t.users[u.ID] = next
		return nil
	})
}

// Delete borra la cuenta y, en cascada, su empleado si no tiene referencias.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return domain.ErrNotFound
		}
		for eid, e := range t.employees {
			if e.UserID != id {
				continue
			}
			if employeeReferenced(t, eid) {
				return domain.ErrInUse
			}
			delete(t.employees, eid)
		}
		delete(t.users, id)
		return nil
	})
}

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct {
	sc scope
}

// NewEmployeeRepository construye el repositorio fuera de transacción.
func NewEmployeeRepository(s *Store) *EmployeeRepo {
	return &EmployeeRepo{sc: scope{s: s}}
}

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.users[e.UserID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range t.employees {
			if other.ID == e.ID || other.UserID == e.UserID {
				return domain.ErrDuplicate
			}
		}
		stored := *e
		stored.User = entity.User{}
		t.employees[e.ID] = stored
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	r.sc.read(func(t *tables) {
		if e, ok := t.employees[id]; ok {
			out = withUser(t, e)
		}
	})
	return out, nil
}

func (r *EmployeeRepo) GetByUserID(_ context.Context, userID string) (*entity.Employee, error) {
	var out *entity.Employee
	r.sc.read(func(t *tables) {
		for _, e := range t.employees {
			if e.UserID == userID {
				out = withUser(t, e)
				return
			}
		}
	})
	return out, nil
}

func (r *EmployeeRepo) List(_ context.Context, includeInactive bool) ([]*entity.Employee, error) {
	var list []*entity.Employee
	r.sc.read(func(t *tables) {
		for _, e := range t.employees {
			if !includeInactive && !e.Active {
				continue
			}
			list = append(list, withUser(t, e))
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].User.FullName(), list[j].User.FullName()
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return r.sc.write(func(t *tables) error {
		cur, ok := t.employees[e.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *e
		next.UserID = cur.UserID
		next.User = entity.User{}
		t.employees[e.ID] = next
		return nil
	})
}

func (r *EmployeeRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.employees[id]; !ok {
			return domain.ErrNotFound
		}
		if employeeReferenced(t, id) {
			return domain.ErrInUse
		}
		delete(t.employees, id)
		return nil
	})
}

func employeeReferenced(t *tables, id string) bool {
	for _, s := range t.sales {
		if s.EmployeeID == id {
			return true
		}
	}
	for _, m := range t.movements {
		if m.EmployeeID == id {
			return true
		}
	}
	return false
}

func withUser(t *tables, e entity.Employee) *entity.Employee {
	e.User = t.users[e.UserID]
	return &e
}
