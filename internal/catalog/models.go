package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type Ingredient struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	IsLTO    bool   `json:"is_lto,omitempty"`
}

// IngredientCatalog is keyed by ingredient name. Entries decoded from the
// ingredient document have Name filled from their key.
type IngredientCatalog map[string]Ingredient

func (c *IngredientCatalog) UnmarshalJSON(b []byte) error {
	var raw map[string]struct {
		Category string `json:"category"`
		Image    string `json:"image"`
		IsLTO    bool   `json:"is_lto"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(IngredientCatalog, len(raw))
	for name, v := range raw {
		out[name] = Ingredient{Name: name, Category: v.Category, Image: v.Image, IsLTO: v.IsLTO}
	}
	*c = out
	return nil
}

// MarshalJSON writes the document shape: entries keyed by name, without a
// name field.
func (c IngredientCatalog) MarshalJSON() ([]byte, error) {
	type entry struct {
		Category string `json:"category"`
		Image    string `json:"image"`
		IsLTO    bool   `json:"is_lto,omitempty"`
	}
	out := make(map[string]entry, len(c))
	for k, v := range c {
		out[k] = entry{Category: v.Category, Image: v.Image, IsLTO: v.IsLTO}
	}
	return json.Marshal(out)
}

type Sub struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Tip         string   `json:"tip"`
	Image       string   `json:"image"`
}

// Number is the "#<digits>" token of the sub's name, if any.
func (s Sub) Number() (string, bool) { return ExtractNumber(s.Name) }

// DisplayName is the name without its number prefix.
func (s Sub) DisplayName() string { return CleanName(s.Name) }

// Contains reports whether key is one of the sub's ingredients.
func (s Sub) Contains(key string) bool {
	for _, k := range s.Ingredients {
		if k == key {
			return true
		}
	}
	return false
}

type Category struct {
	Name string `json:"name"`
	Subs []Sub  `json:"subs"`
}

// SubCatalog maps category names to ordered sub lists. Category order is the
// order in which categories appear in the source document.
type SubCatalog struct {
	categories []Category
}

func NewSubCatalog(categories ...Category) SubCatalog {
	return SubCatalog{categories: categories}
}

// Categories returns the category names in document order.
func (c SubCatalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Name)
	}
	return out
}

func (c SubCatalog) HasCategory(name string) bool {
	for _, cat := range c.categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}

// Subs returns the subs of one category, or nil.
func (c SubCatalog) Subs(category string) []Sub {
	for _, cat := range c.categories {
		if cat.Name == category {
			return cat.Subs
		}
	}
	return nil
}

// All flattens the catalog by concatenating categories in order.
func (c SubCatalog) All() []Sub {
	var out []Sub
	for _, cat := range c.categories {
		out = append(out, cat.Subs...)
	}
	return out
}

// InCategories flattens only the named categories, keeping catalog order.
func (c SubCatalog) InCategories(names map[string]bool) []Sub {
	var out []Sub
	for _, cat := range c.categories {
		if names[cat.Name] {
			out = append(out, cat.Subs...)
		}
	}
	return out
}

// FindSub returns the first sub with the exact name.
func (c SubCatalog) FindSub(name string) (Sub, bool) {
	for _, cat := range c.categories {
		for _, s := range cat.Subs {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Sub{}, false
}

func (c SubCatalog) Len() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Subs)
	}
	return n
}

// UnmarshalJSON reads {"Category": [subs...], ...} keeping key order.
func (c *SubCatalog) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("sub catalog must be a JSON object")
	}
	var cats []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var subs []Sub
		if err := dec.Decode(&subs); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		cats = append(cats, Category{Name: name, Subs: subs})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	c.categories = cats
	return nil
}

func (c SubCatalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		subs := cat.Subs
		if subs == nil {
			subs = []Sub{}
		}
		v, err := json.Marshal(subs)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DisplayConfig is the sorting_config.json record.
type DisplayConfig struct {
	SortMode            string `json:"sort_mode"`
	IngredientImageSize int    `json:"ingredient_image_size"`
	UITextSize          int    `json:"ui_text_size"`
	IngredientTextSize  int    `json:"ingredient_text_size"`
	TipIcon             string `json:"tip_icon,omitempty"`
}
