package data

import (
	"html/template"
	"time"
)

// Component is a purchasable UI component in the catalog.
type Component struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	Slug         string        `db:"slug"`
	Description  string        `db:"description"`
	HTMLContent  template.HTML `db:"-"`
	Price        *float64      `db:"price"`
	IsFree       bool          `db:"is_free"`
	IsFeatured   bool          `db:"is_featured"`
	IsNew        bool          `db:"is_new"`
	IsAI         bool          `db:"is_ai"`
	CategoryID   int64         `db:"category_id"`
	CategoryName string        `db:"category_name"`
	CreatedAt    time.Time     `db:"created_at"`
	Keywords     []string      `db:"-"`
}

// Category represents a named grouping of components.
type Category struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
}

// Order is a completed purchase of a single component.
type Order struct {
	ID           int64     `db:"id"`
	ComponentID  int64     `db:"component_id"`
	BuyerSubject string    `db:"buyer_subject"`
	Amount       float64   `db:"amount"`
	CreatedAt    time.Time `db:"created_at"`
}

// ComponentPage is one window of a filtered listing. Matched counts every
// component satisfying the filter, Total counts the whole catalog.
type ComponentPage struct {
	Components []*Component
	Matched    int
	Total      int
}
