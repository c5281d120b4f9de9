package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// CatalogTotals holds whole-catalog counters for the admin dashboard.
type CatalogTotals struct {
	Components         int `db:"components"`
	Categories         int `db:"categories"`
	FreeComponents     int `db:"free_components"`
	FeaturedComponents int `db:"featured_components"`
}

// OrderTotals aggregates orders placed in a time window.
type OrderTotals struct {
	Orders  int     `db:"orders"`
	Revenue float64 `db:"revenue"`
}

// StatsRepository runs the aggregate queries behind the admin dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CatalogTotals counts components, categories and flagged components.
func (r *StatsRepository) CatalogTotals(ctx context.Context) (*CatalogTotals, error) {
	var totals CatalogTotals
	query := `SELECT
		(SELECT COUNT(*) FROM components) AS components,
		(SELECT COUNT(*) FROM categories) AS categories,
		(SELECT COUNT(*) FROM components WHERE is_free = ?) AS free_components,
		(SELECT COUNT(*) FROM components WHERE is_featured = ?) AS featured_components`
	if err := r.db.GetContext(ctx, &totals, query, true, true); err != nil {
		return nil, fmt.Errorf("failed to count catalog totals: %w", err)
	}
	return &totals, nil
}

// ComponentsCreatedBetween counts components created in [from, to).
func (r *StatsRepository) ComponentsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM components WHERE created_at >= ? AND created_at < ?`
	if err := r.db.GetContext(ctx, &n, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count new components: %w", err)
	}
	return n, nil
}

// OrdersBetween sums orders placed in [from, to).
func (r *StatsRepository) OrdersBetween(ctx context.Context, from, to time.Time) (*OrderTotals, error) {
	var totals OrderTotals
	query := `SELECT COUNT(*) AS orders, COALESCE(SUM(amount), 0) AS revenue FROM orders WHERE created_at >= ? AND created_at < ?`
	if err := r.db.GetContext(ctx, &totals, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to sum orders: %w", err)
	}
	return &totals, nil
}
