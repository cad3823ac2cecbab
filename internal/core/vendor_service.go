package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorService provides vendor master data operations.
type VendorService interface {
	ListVendors(ctx context.Context) ([]Vendor, error)
	GetVendor(ctx context.Context, id int) (*Vendor, error)
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)
	UpdateVendor(ctx context.Context, id int, input VendorInput) (*Vendor, error)
	DeleteVendor(ctx context.Context, id int) error
}

type vendorService struct {
	pool *pgxpool.Pool
}

// NewVendorService constructs a VendorService backed by PostgreSQL.
func NewVendorService(pool *pgxpool.Pool) VendorService {
	return &vendorService{pool: pool}
}

func (s *vendorService) ListVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, phone, address, gst_number, created_at
		FROM vendors
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.GSTNumber, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *vendorService) GetVendor(ctx context.Context, id int) (*Vendor, error) {
	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, gst_number, created_at
		FROM vendors
		WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.GSTNumber, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vendor %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get vendor %d: %w", id, err)
	}
	return v, nil
}

func (s *vendorService) CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, wrapValidation("vendor name is required")
	}

	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vendors (name, email, phone, address, gst_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, address, gst_number, created_at`,
		input.Name, input.Email, input.Phone, input.Address, input.GSTNumber,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.GSTNumber, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vendor %q: %w", input.Name, err)
	}
	return v, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, id int, input VendorInput) (*Vendor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, wrapValidation("vendor name is required")
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE vendors
		SET name = $1, email = $2, phone = $3, address = $4, gst_number = $5
		WHERE id = $6`,
		input.Name, input.Email, input.Phone, input.Address, input.GSTNumber, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update vendor %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("vendor %d: %w", id, ErrNotFound)
	}
	return s.GetVendor(ctx, id)
}

func (s *vendorService) DeleteVendor(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete vendor %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vendor %d: %w", id, ErrNotFound)
	}
	return nil
}
