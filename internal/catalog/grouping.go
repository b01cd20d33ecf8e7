package catalog

import (
	"regexp"
	"sort"
	"strconv"
)

var quantitySuffix = regexp.MustCompile(` x(\d+)$`)

// IngredientGroup collapses an ingredient and its quantity-suffixed variants
// ("Bacon", "Bacon x2", ...) into one logical ingredient.
type IngredientGroup struct {
	BaseName string   `json:"base_name"`
	Variants []string `json:"variants"`
	Category string   `json:"category"`
	Image    string   `json:"image"`
	IsLTO    bool     `json:"is_lto"`
}

func (g IngredientGroup) HasVariants() bool { return len(g.Variants) > 1 }

// HasVariant reports whether key belongs to the group.
func (g IngredientGroup) HasVariant(key string) bool {
	for _, v := range g.Variants {
		if v == key {
			return true
		}
	}
	return false
}

// BaseName strips a trailing " x<digits>" quantity marker.
func BaseName(key string) string {
	return quantitySuffix.ReplaceAllString(key, "")
}

func quantity(key string) int {
	m := quantitySuffix.FindStringSubmatch(key)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// GroupIngredients partitions the catalog by base name. Groups come back
// sorted by base name; every key lands in exactly one group.
func GroupIngredients(c IngredientCatalog) []IngredientGroup {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byBase := map[string]*IngredientGroup{}
	canonicalFromBase := map[string]bool{}
	var order []string
	for _, key := range keys {
		ing := c[key]
		base := BaseName(key)
		g, ok := byBase[base]
		if !ok {
			g = &IngredientGroup{BaseName: base}
			byBase[base] = g
			order = append(order, base)
		}
		g.Variants = append(g.Variants, key)
		if key == base || (!canonicalFromBase[base] && len(g.Variants) == 1) {
			g.Category, g.Image, g.IsLTO = ing.Category, ing.Image, ing.IsLTO
			if key == base {
				canonicalFromBase[base] = true
			}
		}
	}

	sort.Strings(order)
	out := make([]IngredientGroup, 0, len(order))
	for _, base := range order {
		g := byBase[base]
		sortVariants(g.BaseName, g.Variants)
		out = append(out, *g)
	}
	return out
}

func sortVariants(base string, variants []string) {
	sort.SliceStable(variants, func(i, j int) bool {
		a, b := variants[i], variants[j]
		if a == base || b == base {
			return a == base && b != base
		}
		qa, qb := quantity(a), quantity(b)
		if qa != qb {
			return qa < qb
		}
		return a < b
	})
}

// GroupFor returns the group holding key.
func GroupFor(groups []IngredientGroup, key string) (IngredientGroup, bool) {
	base := BaseName(key)
	for _, g := range groups {
		if g.BaseName == base && g.HasVariant(key) {
			return g, true
		}
	}
	return IngredientGroup{}, false
}
