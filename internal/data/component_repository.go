package data

import (
	"context"
	"database/sql"
	"fmt"
	"ui-market/internal/catalog"

	"github.com/jmoiron/sqlx"
)

const (
	componentColumns = `c.id, c.name, c.slug, c.description, c.price, c.is_free, c.is_featured, c.is_new, c.is_ai, c.category_id, c.created_at, cat.name AS category_name`
	componentFrom    = ` FROM components c JOIN categories cat ON cat.id = c.category_id`
	componentOrder   = ` ORDER BY c.created_at DESC, c.id ASC`
)

// rebindQueryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type rebindQueryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// SQLComponentRepository reads components with sqlx.
type SQLComponentRepository struct {
	db *sqlx.DB
}

// NewSQLComponentRepository creates a new SQLComponentRepository.
func NewSQLComponentRepository(db *sqlx.DB) *SQLComponentRepository {
	return &SQLComponentRepository{db: db}
}

// FindPage returns the window [Skip, Skip+Limit) of components matching f,
// newest first, together with the matched and total counts. The predicate is
// built once and both the count and the select run in the same read-only
// transaction, so the counts always describe the returned window.
func (r *SQLComponentRepository) FindPage(ctx context.Context, f catalog.Filter) (*ComponentPage, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = catalog.DefaultPageSize
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	p := buildPredicate(f)

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin listing transaction: %w", err)
	}
	defer tx.Rollback()

	page := &ComponentPage{Components: []*Component{}}
	if err := tx.GetContext(ctx, &page.Total, `SELECT COUNT(*) FROM components`); err != nil {
		return nil, fmt.Errorf("failed to count components: %w", err)
	}
	if err := tx.GetContext(ctx, &page.Matched, `SELECT COUNT(*)`+componentFrom+` WHERE `+p.where, p.args...); err != nil {
		return nil, fmt.Errorf("failed to count matching components: %w", err)
	}
	if skip >= page.Matched {
		return page, nil
	}

	query := `SELECT ` + componentColumns + componentFrom + ` WHERE ` + p.where + componentOrder + ` LIMIT ? OFFSET ?`
	args := make([]interface{}, 0, len(p.args)+2)
	args = append(args, p.args...)
	args = append(args, limit, skip)
	if err := tx.SelectContext(ctx, &page.Components, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select components: %w", err)
	}
	if err := loadKeywords(ctx, tx, page.Components); err != nil {
		return nil, err
	}
	return page, nil
}

// GetBySlug finds a single component by its slug.
func (r *SQLComponentRepository) GetBySlug(ctx context.Context, slug string) (*Component, error) {
	var component Component
	query := `SELECT ` + componentColumns + componentFrom + ` WHERE c.slug = ?`
	if err := r.db.GetContext(ctx, &component, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get component by slug: %w", err)
	}
	if err := loadKeywords(ctx, r.db, []*Component{&component}); err != nil {
		return nil, err
	}
	return &component, nil
}

// GetAll retrieves every component, newest first, without keywords.
func (r *SQLComponentRepository) GetAll(ctx context.Context) ([]*Component, error) {
	var components []*Component
	query := `SELECT ` + componentColumns + componentFrom + componentOrder
	if err := r.db.SelectContext(ctx, &components, query); err != nil {
		return nil, fmt.Errorf("failed to get all components: %w", err)
	}
	return components, nil
}

// SearchNames returns the names of components whose name contains query,
// ignoring case.
func (r *SQLComponentRepository) SearchNames(ctx context.Context, query string) ([]string, error) {
	var names []string
	q := `SELECT c.name FROM components c WHERE LOWER(c.name) LIKE ? ESCAPE '` + likeEscape + `' ORDER BY c.name`
	if err := r.db.SelectContext(ctx, &names, q, containsPattern(query)); err != nil {
		return nil, fmt.Errorf("failed to search component names: %w", err)
	}
	return names, nil
}

type keywordRow struct {
	ComponentID int64  `db:"component_id"`
	Keyword     string `db:"keyword"`
}

// loadKeywords fills Keywords on each component with a single IN query.
func loadKeywords(ctx context.Context, q rebindQueryer, components []*Component) error {
	if len(components) == 0 {
		return nil
	}
	ids := make([]int64, len(components))
	byID := make(map[int64]*Component, len(components))
	for i, c := range components {
		c.Keywords = []string{}
		ids[i] = c.ID
		byID[c.ID] = c
	}

	query, args, err := sqlx.In(`SELECT component_id, keyword FROM component_keywords WHERE component_id IN (?) ORDER BY keyword`, ids)
	if err != nil {
		return fmt.Errorf("failed to build keyword query: %w", err)
	}
	var rows []keywordRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load component keywords: %w", err)
	}
	for _, row := range rows {
		if c, ok := byID[row.ComponentID]; ok {
			c.Keywords = append(c.Keywords, row.Keyword)
		}
	}
	return nil
}
