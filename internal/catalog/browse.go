package catalog

import (
	"sort"
	"strings"
)

// MatchesCategory applies the ingredient browser filter. "All" matches
// everything and "LTO" also matches entries flagged limited-time.
func MatchesCategory(category, ingCategory string, isLTO bool) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryLTO:
		return isLTO || ingCategory == CategoryLTO
	default:
		return ingCategory == category
	}
}

// FilterGroups keeps the groups matching category and orders them by
// category then name, or by name only when alpha is set.
func FilterGroups(groups []IngredientGroup, category string, alpha bool) []IngredientGroup {
	out := make([]IngredientGroup, 0, len(groups))
	for _, g := range groups {
		if MatchesCategory(category, g.Category, g.IsLTO) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !alpha {
			if c := strings.Compare(out[i].Category, out[j].Category); c != 0 {
				return c < 0
			}
		}
		return out[i].BaseName < out[j].BaseName
	})
	return out
}

// FilterIngredients is FilterGroups for ungrouped catalog entries.
func FilterIngredients(c IngredientCatalog, category string, alpha bool) []Ingredient {
	out := make([]Ingredient, 0, len(c))
	for _, ing := range c {
		if MatchesCategory(category, ing.Category, ing.IsLTO) {
			out = append(out, ing)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !alpha {
			if c := strings.Compare(out[i].Category, out[j].Category); c != 0 {
				return c < 0
			}
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AlphaSort reports whether a sort mode selects name-only ordering.
func AlphaSort(mode string) bool {
	return mode == "alpha" || mode == "alphabetical"
}
