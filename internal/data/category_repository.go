package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// FindByName finds a category by name, ignoring ASCII case. It returns nil
// when no category has that name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, "SELECT id, name, slug, description FROM categories WHERE LOWER(name) = LOWER(?)", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &category, nil
}

// SearchByName returns the names of categories containing query, ignoring case.
func (r *CategoryRepository) SearchByName(ctx context.Context, query string) ([]string, error) {
	var names []string
	q := "SELECT name FROM categories WHERE LOWER(name) LIKE ? ESCAPE '" + likeEscape + "' ORDER BY name"
	if err := r.DB.SelectContext(ctx, &names, q, containsPattern(query)); err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return names, nil
}

// GetAll retrieves all categories from the database.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	err := r.DB.SelectContext(ctx, &categories, "SELECT id, name, slug, description FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}
