// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory y en las pruebas de casos de uso y handlers.
package memory

import (
	"sync"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// Store guarda todas las tablas. mu protege los datos; txMu serializa las transacciones
// con el resto de accesos: fuera de una transacción ni lecturas ni escrituras ven
// cambios sin confirmar que un rollback restauraría después.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data tables
}

type tables struct {
	products    map[string]entity.Product
	categories  map[string]entity.Category
	collections map[string]entity.Collection
	movements   map[string]entity.Movement
	sales       map[string]entity.Sale
	clients     map[string]entity.Client
	users       map[string]entity.User
	employees   map[string]entity.Employee
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

func newTables() tables {
	return tables{
		products:    map[string]entity.Product{},
		categories:  map[string]entity.Category{},
		collections: map[string]entity.Collection{},
		movements:   map[string]entity.Movement{},
		sales:       map[string]entity.Sale{},
		clients:     map[string]entity.Client{},
		users:       map[string]entity.User{},
		employees:   map[string]entity.Employee{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.categories {
		c.categories[k] = v
	}
	for k, v := range t.collections {
		c.collections[k] = v
	}
	for k, v := range t.movements {
		c.movements[k] = v
	}
	for k, v := range t.sales {
		v.Lines = append([]entity.SaleLine(nil), v.Lines...)
		c.sales[k] = v
	}
	for k, v := range t.clients {
		c.clients[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.employees {
		c.employees[k] = v
	}
	return c
}

// scope indica si el repositorio opera dentro de una transacción (txMu ya tomado).
type scope struct {
	s  *Store
	tx bool
}

func (sc scope) write(fn func(t *tables) error) error {
	if !sc.tx {
		sc.s.txMu.Lock()
		defer sc.s.txMu.Unlock()
	}
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	return fn(&sc.s.data)
}

func (sc scope) read(fn func(t *tables)) {
	if !sc.tx {
		sc.s.txMu.Lock()
		defer sc.s.txMu.Unlock()
	}
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	fn(&sc.s.data)
}

// page aplica offset y limit sobre un listado ya ordenado. limit <= 0 no limita.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
