// Package web serves the HTML shells of the dashboard pages. The shells are
// thin: each page fetches its data from /api in the browser.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page describes one dashboard screen.
type Page struct {
	Path  string
	Name  string // template to render
	Title string
	API   string // endpoint the page loads, if any
}

// Pages lists every screen. Paths with :id take the record id from the URL.
var Pages = []Page{
	{Path: "/signin", Name: "auth", Title: "Sign in"},
	{Path: "/signup", Name: "auth", Title: "Create account"},
	{Path: "/dashboard", Name: "dashboard", Title: "Dashboard", API: "/api/dashboard/summary"},
	{Path: "/tours", Name: "table", Title: "Tours", API: "/api/tours"},
	{Path: "/tours/add", Name: "tour-form", Title: "Add tour"},
	{Path: "/tours/edit/:id", Name: "tour-form", Title: "Edit tour", API: "/api/tours/"},
	{Path: "/tours/:id", Name: "record", Title: "Tour", API: "/api/tours/"},
	{Path: "/bookings", Name: "table", Title: "Bookings", API: "/api/bookings"},
	{Path: "/support", Name: "table", Title: "Support tickets", API: "/api/support-tickets"},
	{Path: "/inquiries", Name: "table", Title: "Inquiries", API: "/api/inquiries"},
	{Path: "/feedbacks", Name: "table", Title: "Feedback", API: "/api/feedback"},
	{Path: "/settings", Name: "table", Title: "Staff & agents", API: "/api/staff"},
	{Path: "/profile", Name: "profile", Title: "Profile", API: "/api/admin/profile"},
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout once per page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, p := range Pages {
		if _, ok := r.pages[p.Name]; ok {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.Name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", p.Name, err)
		}
		r.pages[p.Name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type view struct {
	Page
	ID    string
	Admin string
}

// Handler renders p. admin returns the signed-in admin's display name.
func Handler(p Page, admin func(echo.Context) string) echo.HandlerFunc {
	return func(c echo.Context) error {
		v := view{Page: p, ID: c.Param("id"), Admin: admin(c)}
		if v.ID != "" && v.API != "" {
			v.API += v.ID
		}
		return c.Render(http.StatusOK, p.Name, v)
	}
}
