package catalog

import "strings"

// NewSubName is the placeholder name given to subs created in the editor.
const NewSubName = "New Sub"

// Issue is one problem found on a sub. Index is the sub's position within
// its category.
type Issue struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Sub      string `json:"sub"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// Validate reports incomplete subs: a missing or placeholder name, no
// ingredients, ingredient keys absent from info, and a missing image.
// Unknown keys are only reported when info is non-empty.
func Validate(subs SubCatalog, info IngredientCatalog) []Issue {
	var out []Issue
	for _, cat := range subs.Categories() {
		for i, s := range subs.Subs(cat) {
			for _, is := range subIssues(s, info) {
				is.Category, is.Index, is.Sub = cat, i, s.Name
				out = append(out, is)
			}
		}
	}
	return out
}

// Incomplete reports whether s has any validation issue.
func Incomplete(s Sub, info IngredientCatalog) bool {
	return len(subIssues(s, info)) > 0
}

func subIssues(s Sub, info IngredientCatalog) []Issue {
	var out []Issue
	if name := strings.TrimSpace(s.Name); name == "" || name == NewSubName {
		out = append(out, Issue{Field: "name", Message: "sub needs a name"})
	}
	if len(s.Ingredients) == 0 {
		out = append(out, Issue{Field: "ingredients", Message: "sub has no ingredients"})
	}
	if len(info) > 0 {
		for _, k := range s.Ingredients {
			if _, ok := info[k]; !ok {
				out = append(out, Issue{Field: "ingredients", Message: "'" + k + "' not found in available ingredients"})
			}
		}
	}
	if strings.TrimSpace(s.Image) == "" {
		out = append(out, Issue{Field: "image", Message: "sub has no image"})
	}
	return out
}
