package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.category_id, c.name, p.collection_id, COALESCE(col.name, ''),
	       p.sizes, p.description, p.image_url, p.unit_price, p.stock, p.min_stock, p.active,
	       p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN collections col ON col.id = p.collection_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var collectionID *string
	err := row.Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &collectionID, &p.CollectionName,
		&p.Sizes, &p.Description, &p.ImageURL, &p.UnitPrice, &p.Stock, &p.MinStock, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CollectionID = deref(collectionID)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, collection_id, sizes, description, image_url, unit_price, stock, min_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, nullable(product.CollectionID), product.Sizes,
		product.Description, product.ImageURL, product.UnitPrice, product.Stock, product.MinStock,
		product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica el stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, collection_id = $4, sizes = $5, description = $6,
		       image_url = $7, unit_price = $8, min_stock = $9, active = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, nullable(product.CollectionID), product.Sizes,
		product.Description, product.ImageURL, product.UnitPrice, product.MinStock, product.Active,
		product.UpdatedAt,
	)
	if err != nil {
		return writeErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock (usado por el ledger dentro de la transacción).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`, id, stock, at)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos aplicando los filtros con AND, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	sql, args, err := buildProductListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build product list: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func buildProductListQuery(f repository.ProductFilter) (string, []any, error) {
	q := psql.Select(
		"p.id", "p.name", "p.category_id", "c.name", "p.collection_id", "COALESCE(col.name, '')",
		"p.sizes", "p.description", "p.image_url", "p.unit_price", "p.stock", "p.min_stock", "p.active",
		"p.created_at", "p.updated_at",
	).
		From("products p").
		Join("categories c ON c.id = p.category_id").
		LeftJoin("collections col ON col.id = p.collection_id")

	if !f.IncludeInactive {
		q = q.Where(squirrel.Eq{"p.active": true})
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where(squirrel.ILike{"p.name": "%" + escapeLike(name) + "%"})
	}
	if f.CategoryID != "" {
		q = q.Where(squirrel.Eq{"p.category_id": f.CategoryID})
	}
	if f.CollectionID != "" {
		q = q.Where(squirrel.Eq{"p.collection_id": f.CollectionID})
	}
	if f.PriceMin != nil {
		q = q.Where(squirrel.GtOrEq{"p.unit_price": *f.PriceMin})
	}
	if f.PriceMax != nil {
		q = q.Where(squirrel.LtOrEq{"p.unit_price": *f.PriceMax})
	}
	if f.StockMin != nil {
		q = q.Where(squirrel.GtOrEq{"p.stock": *f.StockMin})
	}
	if f.StockMax != nil {
		q = q.Where(squirrel.LtOrEq{"p.stock": *f.StockMax})
	}
	if f.LowStock {
		q = q.Where("p.stock <= p.min_stock")
	}
	q = q.OrderBy("p.name ASC", "p.id ASC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q.ToSql()
}

// escapeLike escapa los comodines de LIKE en la entrada del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Delete elimina un producto. ErrInUse si tiene movimientos o líneas de venta.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return deleteErr("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
