// Package views renders the browse pages and the study-sheet export.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/subtrainer/subtrainer/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// ImageURLs maps catalog image keys to public URLs.
type ImageURLs interface {
	URL(key string) string
}

// Page carries what every page needs.
type Page struct {
	Title   string
	Zoom    float64
	Config  catalog.DisplayConfig
	Warning string
}

type SubLink struct {
	Number     string
	Name       string
	Href       string
	Incomplete bool
}

type ListPage struct {
	Page
	Categories []string
	Category   string
	Subs       []SubLink
}

type IngredientLine struct {
	Name  string
	Image string
}

type DetailPage struct {
	Page
	Number      string
	Name        string
	Image       string
	Tip         string
	TipIcon     string
	Ingredients []IngredientLine
}

type GroupLine struct {
	catalog.IngredientGroup
	Image string
}

type IngredientsPage struct {
	Page
	Categories []string
	Category   string
	Sort       string
	Groups     []GroupLine
}

type TipLine struct {
	Text string
	Icon string
}

type TipsPage struct {
	Page
	Tips []TipLine
}

type Renderer struct {
	pages  map[string]*template.Template
	images ImageURLs
}

func New(images ImageURLs) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}, images: images}
	for _, name := range []string{"list", "detail", "ingredients", "tips"} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) render(w io.Writer, name string, data any) error {
	return r.pages[name].ExecuteTemplate(w, "base", data)
}

// SubHref is the detail page path for a sub.
func SubHref(name string) string {
	return "/subs/" + url.PathEscape(name)
}

// List renders the sub list, restricted to category when it is non-empty.
// Incomplete subs are flagged.
func (r *Renderer) List(w io.Writer, p Page, subs catalog.SubCatalog, info catalog.IngredientCatalog, category string) error {
	p.Title = "Subs"
	data := ListPage{Page: p, Categories: subs.Categories(), Category: category}
	items := subs.All()
	if category != "" {
		items = subs.Subs(category)
	}
	for _, s := range items {
		num, _ := s.Number()
		data.Subs = append(data.Subs, SubLink{
			Number:     num,
			Name:       s.DisplayName(),
			Href:       SubHref(s.Name),
			Incomplete: catalog.Incomplete(s, info),
		})
	}
	return r.render(w, "list", data)
}

func (r *Renderer) Detail(w io.Writer, p Page, sub catalog.Sub, info catalog.IngredientCatalog) error {
	p.Title = sub.DisplayName()
	num, _ := sub.Number()
	data := DetailPage{
		Page:    p,
		Number:  num,
		Name:    sub.DisplayName(),
		Image:   r.images.URL(sub.Image),
		Tip:     sub.Tip,
		TipIcon: p.Config.TipIcon,
	}
	for _, key := range sub.Ingredients {
		data.Ingredients = append(data.Ingredients, IngredientLine{Name: key, Image: r.images.URL(info[key].Image)})
	}
	return r.render(w, "detail", data)
}

// Ingredients renders the grouped ingredient browser. sort is "alpha" or "category".
func (r *Renderer) Ingredients(w io.Writer, p Page, groups []catalog.IngredientGroup, category, sort string) error {
	p.Title = "Ingredients"
	if category == "" {
		category = catalog.CategoryAll
	}
	if catalog.AlphaSort(sort) {
		sort = "alpha"
	} else {
		sort = "category"
	}
	data := IngredientsPage{
		Page:       p,
		Categories: catalog.IngredientCategories,
		Category:   category,
		Sort:       sort,
	}
	for _, g := range catalog.FilterGroups(groups, category, sort == "alpha") {
		data.Groups = append(data.Groups, GroupLine{IngredientGroup: g, Image: r.images.URL(g.Image)})
	}
	return r.render(w, "ingredients", data)
}

func (r *Renderer) Tips(w io.Writer, p Page, tips []catalog.Tip) error {
	p.Title = "Tips"
	data := TipsPage{Page: p}
	for _, t := range tips {
		data.Tips = append(data.Tips, TipLine{Text: t.Text, Icon: t.IconOr(p.Config.TipIcon)})
	}
	return r.render(w, "tips", data)
}
