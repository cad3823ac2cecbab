package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductService provides catalog operations over batch records.
type ProductService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	// CreateProduct adds a manually entered batch. A blank SKU gets a
	// generated one; the batch code is always generated.
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

func (s *productService) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, sku, batch_code, purchase_price, selling_price, stock, created_at
		FROM products
		ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.BatchCode,
			&p.PurchasePrice, &p.SellingPrice, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *productService) GetProduct(ctx context.Context, id int) (*Product, error) {
	p := &Product{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, sku, batch_code, purchase_price, selling_price, stock, created_at
		FROM products
		WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.SKU, &p.BatchCode,
		&p.PurchasePrice, &p.SellingPrice, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = NewSKU()
	}

	p := &Product{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, sku, batch_code, purchase_price, selling_price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, sku, batch_code, purchase_price, selling_price, stock, created_at`,
		input.Name, sku, NewBatchCode(), input.PurchasePrice, input.SellingPrice, input.Stock,
	).Scan(&p.ID, &p.Name, &p.SKU, &p.BatchCode,
		&p.PurchasePrice, &p.SellingPrice, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", input.Name, err)
	}
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int, input ProductInput) (*Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.SKU == "" {
		return nil, wrapValidation("sku is required on update")
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, sku = $2, purchase_price = $3, selling_price = $4, stock = $5
		WHERE id = $6`,
		input.Name, input.SKU, input.PurchasePrice, input.SellingPrice, input.Stock, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return s.GetProduct(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}
