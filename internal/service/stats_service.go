package service

import (
	"context"
	"time"
	"ui-market/internal/data"
)

// statsWindow is the length of the "current" and "previous" comparison periods.
const statsWindow = 30 * 24 * time.Hour

// StatsRepository defines the aggregate queries behind the admin dashboard.
type StatsRepository interface {
	CatalogTotals(ctx context.Context) (*data.CatalogTotals, error)
	ComponentsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	OrdersBetween(ctx context.Context, from, to time.Time) (*data.OrderTotals, error)
}

// Trend compares a metric over the current window with the previous one.
type Trend struct {
	Current  float64
	Previous float64
	Change   float64 // percent
}

// DashboardStats is everything the admin stats page shows.
type DashboardStats struct {
	Totals        data.CatalogTotals
	NewComponents Trend
	Orders        Trend
	Revenue       Trend
	WindowStart   time.Time
	GeneratedAt   time.Time
}

// StatsService aggregates catalog and sales figures for administrators.
type StatsService struct {
	repo StatsRepository
	now  func() time.Time
}

// NewStatsService creates a new StatsService. A nil clock means time.Now.
func NewStatsService(repo StatsRepository, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{repo: repo, now: now}
}

// Dashboard computes the current totals and the 30-day trends.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now().UTC()
	currentStart := now.Add(-statsWindow)
	previousStart := currentStart.Add(-statsWindow)

	totals, err := s.repo.CatalogTotals(ctx)
	if err != nil {
		return nil, dataSourceError("dashboard", err)
	}
	newNow, err := s.repo.ComponentsCreatedBetween(ctx, currentStart, now)
	if err != nil {
		return nil, dataSourceError("dashboard", err)
	}
	newBefore, err := s.repo.ComponentsCreatedBetween(ctx, previousStart, currentStart)
	if err != nil {
		return nil, dataSourceError("dashboard", err)
	}
	ordersNow, err := s.repo.OrdersBetween(ctx, currentStart, now)
	if err != nil {
		return nil, dataSourceError("dashboard", err)
	}
	ordersBefore, err := s.repo.OrdersBetween(ctx, previousStart, currentStart)
	if err != nil {
		return nil, dataSourceError("dashboard", err)
	}

	return &DashboardStats{
		Totals:        *totals,
		NewComponents: newTrend(float64(newNow), float64(newBefore)),
		Orders:        newTrend(float64(ordersNow.Orders), float64(ordersBefore.Orders)),
		Revenue:       newTrend(ordersNow.Revenue, ordersBefore.Revenue),
		WindowStart:   currentStart,
		GeneratedAt:   now,
	}, nil
}

func newTrend(current, previous float64) Trend {
	return Trend{Current: current, Previous: previous, Change: PercentChange(current, previous)}
}

// PercentChange returns the change from previous to current in percent. Growth
// from zero counts as 100%.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
