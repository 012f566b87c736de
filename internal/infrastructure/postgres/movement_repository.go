package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx). No toca el stock.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

var movementColumns = []string{
	"m.id", "m.product_id", "p.name", "m.kind", "m.quantity", "m.date", "m.employee_id",
	employeeNameExpr,
	"m.reason", "m.created_at",
}

func movementQuery() squirrel.SelectBuilder {
	return psql.Select(movementColumns...).
		From("inventory_movements m").
		Join("products p ON p.id = m.product_id").
		LeftJoin("employees e ON e.id = m.employee_id").
		LeftJoin("users u ON u.id = e.user_id")
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var employeeID *string
	if err := row.Scan(
		&m.ID, &m.ProductID, &m.ProductName, &m.Kind, &m.Quantity, &m.Date, &employeeID,
		&m.EmployeeName, &m.Reason, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.EmployeeID = deref(employeeID)
	return &m, nil
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, kind, quantity, date, employee_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.Date, nullable(m.EmployeeID), m.Reason, m.CreatedAt,
	)
	if err != nil {
		return writeErr("insert inventory movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	sql, args, err := movementQuery().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movement: %w", err)
	}
	m, err := scanMovement(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update edita los datos del movimiento; el stock del producto no se toca.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_movements SET kind = $2, quantity = $3, employee_id = $4, reason = $5 WHERE id = $1`,
		m.ID, m.Kind, m.Quantity, nullable(m.EmployeeID), m.Reason,
	)
	if err != nil {
		return writeErr("update inventory movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos por fecha descendente.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	q := movementQuery()
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"m.product_id": f.ProductID})
	}
	if f.Kind != "" {
		q = q.Where(squirrel.Eq{"m.kind": f.Kind})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"m.date": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"m.date": *f.To})
	}
	q = q.OrderBy("m.date DESC", "m.id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina el movimiento sin revertir su efecto.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return deleteErr("delete inventory movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
