package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO categories (id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, name, color`,
		category.ID, category.Name, category.Color,
	)
	return scanCategory(row)
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT id, name, color FROM categories WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all categories ordered by name.
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, name, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update renames or recolors a category
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE categories SET name = $2, color = $3 WHERE id = $1
		RETURNING id, name, color`,
		category.ID, category.Name, category.Color,
	)

	updated, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(&category.ID, &category.Name, &category.Color); err != nil {
		return nil, err
	}
	return &category, nil
}
