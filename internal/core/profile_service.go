package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileService reads and writes the singleton business profile.
type ProfileService interface {
	GetProfile(ctx context.Context) (*BusinessProfile, error)
	UpdateProfile(ctx context.Context, profile BusinessProfile) (*BusinessProfile, error)
}

type profileService struct {
	pool *pgxpool.Pool
}

// NewProfileService constructs a ProfileService backed by PostgreSQL.
func NewProfileService(pool *pgxpool.Pool) ProfileService {
	return &profileService{pool: pool}
}

func (s *profileService) GetProfile(ctx context.Context) (*BusinessProfile, error) {
	p := &BusinessProfile{}
	err := s.pool.QueryRow(ctx, `
		SELECT name, address, phone, email, gst_number, description
		FROM business_profile
		WHERE id = 1`,
	).Scan(&p.Name, &p.Address, &p.Phone, &p.Email, &p.GSTNumber, &p.Description)
	if err != nil {
		return nil, fmt.Errorf("get business profile: %w", err)
	}
	return p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profile BusinessProfile) (*BusinessProfile, error) {
	_, err := s.pool.Exec(ctx, `
		UPDATE business_profile
		SET name = $1, address = $2, phone = $3, email = $4, gst_number = $5, description = $6
		WHERE id = 1`,
		profile.Name, profile.Address, profile.Phone, profile.Email,
		profile.GSTNumber, profile.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("update business profile: %w", err)
	}
	return s.GetProfile(ctx)
}
