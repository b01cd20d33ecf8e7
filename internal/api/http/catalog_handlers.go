package http

import (
	"math/rand"
	"net/http"

	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/storage"
	"github.com/subtrainer/subtrainer/internal/views"
)

type subSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Number      string `json:"number,omitempty"`
	Category    string `json:"category"`
	Href        string `json:"href"`
	Image       string `json:"image"`
}

type ingredientView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	IsLTO    bool   `json:"is_lto,omitempty"`
	Image    string `json:"image"`
}

type subDetail struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Number      string           `json:"number,omitempty"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Tip         string           `json:"tip,omitempty"`
	TipIcon     string           `json:"tip_icon"`
	Ingredients []ingredientView `json:"ingredients"`
}

type groupView struct {
	BaseName string   `json:"base_name"`
	Category string   `json:"category"`
	IsLTO    bool     `json:"is_lto,omitempty"`
	Image    string   `json:"image"`
	Variants []string `json:"variants"`
}

type tipView struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

func CatalogHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		writeJSON(w, http.StatusOK, c.Subs)
	}
}

func ListSubsHandler(lib *Library, images *storage.ImageResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		cats := c.Subs.Categories()
		if want := r.URL.Query().Get("category"); want != "" {
			if !c.Subs.HasCategory(want) {
				writeError(w, http.StatusNotFound, "unknown category")
				return
			}
			cats = []string{want}
		}
		out := []subSummary{}
		for _, cat := range cats {
			for _, s := range c.Subs.Subs(cat) {
				num, _ := s.Number()
				out = append(out, subSummary{
					Name:        s.Name,
					DisplayName: s.DisplayName(),
					Number:      num,
					Category:    cat,
					Href:        views.SubHref(s.Name),
					Image:       images.URL(s.Image),
				})
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetSubHandler(lib *Library, images *storage.ImageResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		name := urlParam(r, "name")
		sub, ok := c.Subs.FindSub(name)
		if !ok {
			writeError(w, http.StatusNotFound, "sub not found")
			return
		}
		num, _ := sub.Number()
		d := subDetail{
			Name:        sub.Name,
			DisplayName: sub.DisplayName(),
			Number:      num,
			Category:    categoryOf(c.Subs, sub.Name),
			Image:       images.URL(sub.Image),
			Tip:         sub.Tip,
			TipIcon:     c.Config.TipIcon,
			Ingredients: []ingredientView{},
		}
		for _, key := range sub.Ingredients {
			ing := c.Ingredients[key]
			d.Ingredients = append(d.Ingredients, ingredientView{
				Name:     key,
				Category: ing.Category,
				IsLTO:    ing.IsLTO,
				Image:    images.URL(ing.Image),
			})
		}
		writeJSON(w, http.StatusOK, d)
	}
}

// IngredientsHandler serves ?category=&sort=alpha|category&grouped=1.
func IngredientsHandler(lib *Library, images *storage.ImageResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		q := r.URL.Query()
		category := q.Get("category")
		alpha := catalog.AlphaSort(q.Get("sort"))
		if q.Get("grouped") == "1" || q.Get("grouped") == "true" {
			out := []groupView{}
			for _, g := range catalog.FilterGroups(c.Groups, category, alpha) {
				out = append(out, groupView{
					BaseName: g.BaseName,
					Category: g.Category,
					IsLTO:    g.IsLTO,
					Image:    images.URL(g.Image),
					Variants: g.Variants,
				})
			}
			writeJSON(w, http.StatusOK, out)
			return
		}
		out := []ingredientView{}
		for _, ing := range catalog.FilterIngredients(c.Ingredients, category, alpha) {
			out = append(out, ingredientView{
				Name:     ing.Name,
				Category: ing.Category,
				IsLTO:    ing.IsLTO,
				Image:    images.URL(ing.Image),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func TipsHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		out := make([]tipView, 0, len(c.Tips))
		for _, t := range c.Tips {
			out = append(out, tipView{Text: t.Text, Icon: t.IconOr(c.Config.TipIcon)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func RandomTipHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		if len(c.Tips) == 0 {
			writeError(w, http.StatusNotFound, "no tips")
			return
		}
		t := c.Tips[rand.Intn(len(c.Tips))]
		writeJSON(w, http.StatusOK, tipView{Text: t.Text, Icon: t.IconOr(c.Config.TipIcon)})
	}
}

func ConfigHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		writeJSON(w, http.StatusOK, c.Config)
	}
}

func categoryOf(subs catalog.SubCatalog, name string) string {
	for _, cat := range subs.Categories() {
		for _, s := range subs.Subs(cat) {
			if s.Name == name {
				return cat
			}
		}
	}
	return ""
}
