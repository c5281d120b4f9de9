package main

import (
	"fmt"
	"html"
	"strings"
	"ui-market/internal/catalog"
	"ui-market/internal/data"
	"ui-market/internal/service"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Margin(0, 0, 1, 0)

	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("32"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// renderSuggestion turns the <b> markup of a suggestion into terminal styling.
func renderSuggestion(s catalog.Suggestion) string {
	before, rest, found := strings.Cut(s.HighlightedText, "<b>")
	if !found {
		return html.UnescapeString(s.HighlightedText)
	}
	match, after, _ := strings.Cut(rest, "</b>")
	return html.UnescapeString(before) + matchStyle.Render(html.UnescapeString(match)) + html.UnescapeString(after)
}

func renderListing(r *service.ComponentsResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d of %d components (page %d of %d)",
		r.ComponentsCount, r.TotalComponents, r.Page, max(r.TotalPages, 1))))
	b.WriteString("\n")
	if len(r.Components) == 0 {
		b.WriteString(metaStyle.Render("No components match"))
		b.WriteString("\n")
		return b.String()
	}
	for _, c := range r.Components {
		b.WriteString(renderComponent(c))
		b.WriteString("\n")
	}
	return b.String()
}

func renderComponent(c *data.Component) string {
	price := "free"
	if !c.IsFree && c.Price != nil {
		price = fmt.Sprintf("$%.2f", *c.Price)
	} else if !c.IsFree {
		price = "-"
	}

	var badges []string
	for _, flag := range []struct {
		on   bool
		name string
	}{{c.IsFeatured, "featured"}, {c.IsNew, "new"}, {c.IsAI, "ai"}} {
		if flag.on {
			badges = append(badges, flag.name)
		}
	}

	line := fmt.Sprintf("%-30s %-20s %8s", c.Name, c.CategoryName, price)
	if len(badges) > 0 {
		line += " " + badgeStyle.Render(strings.Join(badges, ","))
	}
	return line + " " + metaStyle.Render(c.Slug)
}

func renderStats(s *service.DashboardStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Catalog statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Components: %d  Categories: %d  Free: %d  Featured: %d\n",
		s.Totals.Components, s.Totals.Categories, s.Totals.FreeComponents, s.Totals.FeaturedComponents)
	for _, row := range []struct {
		name  string
		trend service.Trend
	}{{"New components", s.NewComponents}, {"Orders", s.Orders}, {"Revenue", s.Revenue}} {
		fmt.Fprintf(&b, "%-16s %10.2f %10.2f %+8.1f%%\n", row.name, row.trend.Current, row.trend.Previous, row.trend.Change)
	}
	b.WriteString(metaStyle.Render("since " + s.WindowStart.Format("2006-01-02")))
	b.WriteString("\n")
	return b.String()
}
