package memory

import (
	"context"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*TxRunner)(nil)
	_ sales.SalesTxRunner     = (*TxRunner)(nil)
	_ usecase.AccountTxRunner = (*TxRunner)(nil)
)

// TxRunner serializa las transacciones y restaura el snapshot si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(ctx context.Context, fn func(sc scope) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.RLock()
	snapshot := r.s.data.clone()
	r.s.mu.RUnlock()

	if err := fn(scope{s: r.s, tx: true}); err != nil {
		r.s.mu.Lock()
		r.s.data = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// Run transacción de movimientos de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(sc scope) error {
		return fn(&MovementRepo{sc: sc}, &ProductRepo{sc: sc})
	})
}

// RunSale transacción de creación de ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(sc scope) error {
		return fn(&SaleRepo{sc: sc}, &ProductRepo{sc: sc})
	})
}

// RunAccount transacción de cuentas y empleados.
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	return r.run(ctx, func(sc scope) error {
		return fn(&UserRepo{sc: sc}, &EmployeeRepo{sc: sc})
	})
}
