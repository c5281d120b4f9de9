package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// KeywordRepository reads the keyword sets attached to components.
type KeywordRepository struct {
	db *sqlx.DB
}

// NewKeywordRepository creates a new KeywordRepository.
func NewKeywordRepository(db *sqlx.DB) *KeywordRepository {
	return &KeywordRepository{db: db}
}

// GetAll returns every distinct keyword in the catalog, sorted.
func (r *KeywordRepository) GetAll(ctx context.Context) ([]string, error) {
	keywords := []string{}
	query := `SELECT DISTINCT keyword FROM component_keywords ORDER BY keyword`
	if err := r.db.SelectContext(ctx, &keywords, query); err != nil {
		return nil, fmt.Errorf("failed to get all keywords: %w", err)
	}
	return keywords, nil
}

// GetByCategoryName returns the distinct keywords of components in the named
// category (name compared ignoring case), sorted.
func (r *KeywordRepository) GetByCategoryName(ctx context.Context, name string) ([]string, error) {
	keywords := []string{}
	query := `SELECT DISTINCT k.keyword
		FROM component_keywords k
		JOIN components c ON c.id = k.component_id
		JOIN categories cat ON cat.id = c.category_id
		WHERE LOWER(cat.name) = LOWER(?)
		ORDER BY k.keyword`
	if err := r.db.SelectContext(ctx, &keywords, query, name); err != nil {
		return nil, fmt.Errorf("failed to get keywords by category: %w", err)
	}
	return keywords, nil
}

// Search returns the distinct keywords containing query, ignoring case.
func (r *KeywordRepository) Search(ctx context.Context, query string) ([]string, error) {
	keywords := []string{}
	q := `SELECT DISTINCT keyword FROM component_keywords WHERE LOWER(keyword) LIKE ? ESCAPE '` + likeEscape + `' ORDER BY keyword`
	if err := r.db.SelectContext(ctx, &keywords, q, containsPattern(query)); err != nil {
		return nil, fmt.Errorf("failed to search keywords: %w", err)
	}
	return keywords, nil
}
