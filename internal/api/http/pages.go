package http

import (
	"bytes"
	"net/http"

	"github.com/subtrainer/subtrainer/internal/prefs"
	"github.com/subtrainer/subtrainer/internal/views"
)

func pageFor(r *http.Request, c *Content, p *prefs.Service) views.Page {
	return views.Page{Zoom: p.Zoom(r.Context()), Config: c.Config, Warning: c.Warning}
}

// renderHTML buffers the page so template errors become a clean 500.
func renderHTML(w http.ResponseWriter, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func ListPageHandler(lib *Library, p *prefs.Service, v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		category := r.URL.Query().Get("category")
		if category != "" && !c.Subs.HasCategory(category) {
			http.Error(w, "unknown category", http.StatusNotFound)
			return
		}
		renderHTML(w, func(b *bytes.Buffer) error {
			return v.List(b, pageFor(r, c, p), c.Subs, c.Ingredients, category)
		})
	}
}

func DetailPageHandler(lib *Library, p *prefs.Service, v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		sub, ok := c.Subs.FindSub(urlParam(r, "name"))
		if !ok {
			http.Error(w, "sub not found", http.StatusNotFound)
			return
		}
		renderHTML(w, func(b *bytes.Buffer) error {
			return v.Detail(b, pageFor(r, c, p), sub, c.Ingredients)
		})
	}
}

func IngredientsPageHandler(lib *Library, p *prefs.Service, v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		q := r.URL.Query()
		sort := q.Get("sort")
		if sort == "" {
			sort = c.Config.SortMode
		}
		renderHTML(w, func(b *bytes.Buffer) error {
			return v.Ingredients(b, pageFor(r, c, p), c.Groups, q.Get("category"), sort)
		})
	}
}

func TipsPageHandler(lib *Library, p *prefs.Service, v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		renderHTML(w, func(b *bytes.Buffer) error {
			return v.Tips(b, pageFor(r, c, p), c.Tips)
		})
	}
}

func StudySheetHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		var buf bytes.Buffer
		if err := views.WriteStudySheet(&buf, c.Subs, c.Groups); err != nil {
			http.Error(w, "export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="study-sheet.xlsx"`)
		_, _ = buf.WriteTo(w)
	}
}
