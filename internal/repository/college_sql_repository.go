package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

const selectCollegesQuery = `SELECT college, COALESCE(university_name, '') AS university_name, COALESCE(state, '') AS state,
        seats, tuition_fee, hostel_charges_pa, annual, one_time, tuition_package, grand_total,
        opening_rank_2023, closing_rank_2023, COALESCE(website, '') AS website, COALESCE(overview, '') AS overview
        FROM colleges ORDER BY id`

// CollegeSQLRepository reads the registry from a PostgreSQL table. It never writes.
type CollegeSQLRepository struct {
	db *sqlx.DB
}

// NewCollegeSQLRepository constructs a CollegeSQLRepository.
func NewCollegeSQLRepository(db *sqlx.DB) *CollegeSQLRepository {
	return &CollegeSQLRepository{db: db}
}

// Load returns all registry rows in id order.
func (r *CollegeSQLRepository) Load(ctx context.Context) ([]models.College, error) {
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, selectCollegesQuery); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}
