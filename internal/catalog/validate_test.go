package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	info := IngredientCatalog{
		"Ham":  {Name: "Ham", Category: "Meats"},
		"Mayo": {Name: "Mayo", Category: "Condiments"},
	}
	subs := NewSubCatalog(
		Category{Name: "Originals", Subs: []Sub{
			{Name: "#1 Good", Ingredients: []string{"Ham"}, Image: "good.png"},
			{Name: NewSubName, Ingredients: []string{"Ham"}, Image: "x.png"},
		}},
		Category{Name: "Favorites", Subs: []Sub{
			{Name: "#2 Broken", Ingredients: []string{"Ham", "Pickle"}},
			{Name: " ", Image: "y.png"},
		}},
	)
	issues := Validate(subs, info)

	type key struct {
		cat   string
		index int
		field string
	}
	got := map[key]int{}
	for _, is := range issues {
		got[key{is.Category, is.Index, is.Field}]++
	}
	want := map[key]int{
		{"Originals", 1, "name"}:        1,
		{"Favorites", 0, "ingredients"}: 1,
		{"Favorites", 0, "image"}:       1,
		{"Favorites", 1, "name"}:        1,
		{"Favorites", 1, "ingredients"}: 1,
	}
	if len(got) != len(want) {
		t.Fatalf("issues = %+v", issues)
	}
	for k, n := range want {
		if got[k] != n {
			t.Fatalf("issue %v: got %d, want %d (all: %+v)", k, got[k], n, issues)
		}
	}
	if Incomplete(subs.Subs("Originals")[0], info) {
		t.Fatalf("complete sub flagged")
	}
}

func TestValidateSkipsUnknownKeysWithoutCatalog(t *testing.T) {
	subs := NewSubCatalog(Category{Name: "A", Subs: []Sub{
		{Name: "#1 Fine", Ingredients: []string{"Anything"}, Image: "a.png"},
	}})
	if issues := Validate(subs, nil); len(issues) != 0 {
		t.Fatalf("issues = %+v", issues)
	}
}

func TestDirWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := DirWriter{Dir: dir}
	info := IngredientCatalog{"Bacon": {Name: "Bacon", Category: "Meats", Image: "bacon.png", IsLTO: true}}
	if err := w.Write(IngredientDataFile, info); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Write(TipsFile, []Tip{PlainTip("a"), IconedTip("b", "🔥")}); err != nil {
		t.Fatalf("write tips: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, IngredientDataFile))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc["Bacon"]["name"]; ok {
		t.Fatalf("document should not carry a name field: %s", raw)
	}

	l := NewLoader(DirSource{Dir: dir}, false, nil)
	got := l.LoadIngredients(context.Background())
	if got["Bacon"] != info["Bacon"] {
		t.Fatalf("reloaded = %+v", got["Bacon"])
	}
	tips := l.LoadTips(context.Background())
	if len(tips) != 2 || tips[1].Kind != TipIconed {
		t.Fatalf("tips = %+v", tips)
	}

	if err := w.Write("../escape.json", 1); err == nil {
		t.Fatalf("path outside the data dir accepted")
	}
}
