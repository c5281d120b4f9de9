package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path/filepath"
	"strconv"
	"ui-market/internal/catalog"
)

// View represents a collection of parsed HTML templates.
type View struct {
	templates map[string]*template.Template
}

// funcs are available in every template.
var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"price": func(p *float64) string {
		if p == nil {
			return ""
		}
		return "$" + strconv.FormatFloat(*p, 'f', 2, 64)
	},
	// highlight bolds the search term in text. The result is escaped HTML.
	"highlight": func(text, query string) template.HTML {
		return template.HTML(catalog.Highlight(text, query))
	},
	// pageURL rewrites the page parameter of the current query string.
	"pageURL": func(q url.Values, page int) string {
		next := url.Values{}
		for k, v := range q {
			next[k] = v
		}
		next.Set("page", strconv.Itoa(page))
		return "?" + next.Encode()
	},
}

// New creates a new View by parsing all templates from the given filesystem.
func New(templateFS fs.FS) (*View, error) {
	v := &View{
		templates: make(map[string]*template.Template),
	}

	// First, get all the layout files
	layouts, err := fs.Glob(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}

	// Then, get all the page files
	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	// For each page, parse it with the layout files
	for _, page := range pages {
		files := append(append([]string{}, layouts...), page)
		// The name of the template is the base name of the page file
		name := filepath.Base(page)
		ts, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		v.templates[name] = ts
	}

	return v, nil
}

// Render executes a specific template by name. Pages define a "base" layout
// entry point; it is executed when present.
func (v *View) Render(w io.Writer, name string, data map[string]interface{}) error {
	ts, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	entry := name
	if ts.Lookup("base") != nil {
		entry = "base"
	}

	// Execute the template into a buffer first to catch any errors
	// before writing to the response writer.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, entry, data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
