package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

var clientColumns = []string{
	"id", "name", "client_type", "email", "phone", "address", "instagram",
	"business_name", "tax_id", "registered_at", "active",
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(
		&c.ID, &c.Name, &c.Type, &c.Email, &c.Phone, &c.Address, &c.Instagram,
		&c.BusinessName, &c.TaxID, &c.RegisteredAt, &c.Active,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	sql, args, err := psql.Insert("clients").Columns(clientColumns...).Values(
		c.ID, c.Name, c.Type, c.Email, c.Phone, c.Address, c.Instagram,
		c.BusinessName, c.TaxID, c.RegisteredAt, c.Active,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert client: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return writeErr("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	sql, args, err := psql.Select(clientColumns...).From("clients").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client: %w", err)
	}
	c, err := scanClient(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista clientes por nombre.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	q := psql.Select(clientColumns...).From("clients")
	if !f.IncludeInactive {
		q = q.Where(squirrel.Eq{"active": true})
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where(squirrel.ILike{"name": "%" + escapeLike(name) + "%"})
	}
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"client_type": f.Type})
	}
	q = q.OrderBy("name", "id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list clients: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	sql, args, err := psql.Update("clients").SetMap(map[string]any{
		"name":          c.Name,
		"client_type":   c.Type,
		"email":         c.Email,
		"phone":         c.Phone,
		"address":       c.Address,
		"instagram":     c.Instagram,
		"business_name": c.BusinessName,
		"tax_id":        c.TaxID,
		"active":        c.Active,
	}).Where(squirrel.Eq{"id": c.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update client: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return writeErr("update client", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return deleteErr("delete client", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
