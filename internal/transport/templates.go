package transport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"sheet-shop/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"price": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"timestamp": domain.FormatTimestamp,
}

// pageData is what every page template renders from
type pageData struct {
	Title    string
	Active   string
	Error    string
	Email    string
	Products []domain.Product
	Orders   []domain.Order
}

// Renderer renders the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template once
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "about", "products", "orders"} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes a page into a buffer first so a template failure never
// leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data pageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
