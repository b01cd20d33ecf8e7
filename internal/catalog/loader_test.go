package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

const subDoc = `{
  "Originals": [
    {"name": "#1 The Pepe", "ingredients": ["Ham", "Mayo"], "tip": "Fold ham.", "image": "subs/Pepe.png"}
  ],
  "Favorites": [
    {"name": "#7 Spicy East Coast Italian", "ingredients": ["Vito", "Onion"], "tip": "", "image": "subs/SpicyItalian.png"},
    {"name": "Veggie", "ingredients": ["Lettuce"], "tip": "", "image": ""}
  ],
  "Cold": []
}`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SubDataFile, subDoc)
	writeFile(t, dir, IngredientDataFile, `{"Ham": {"category": "Meats", "image": "ham.png"}, "Vito": {"category": "Meats", "image": "vito.png", "is_lto": true}}`)
	writeFile(t, dir, TipsFile, `["plain tip", {"text": "with icon", "icon": "🥪"}, {"text": "no icon"}]`)
	writeFile(t, dir, ConfigFile, `{"sort_mode": "alpha", "ui_text_size": 18}`)

	d, err := NewLoader(DirSource{Dir: dir}, false, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := d.Subs.Categories(); !reflect.DeepEqual(got, []string{"Originals", "Favorites", "Cold"}) {
		t.Fatalf("categories not in document order: %v", got)
	}
	all := d.Subs.All()
	if len(all) != 3 || all[0].Name != "#1 The Pepe" || all[2].Name != "Veggie" {
		t.Fatalf("unexpected flattened subs: %+v", all)
	}
	if ing := d.Ingredients["Vito"]; ing.Name != "Vito" || !ing.IsLTO {
		t.Fatalf("ingredient not decoded: %+v", ing)
	}
	want := []Tip{PlainTip("plain tip"), IconedTip("with icon", "🥪"), PlainTip("no icon")}
	if !reflect.DeepEqual(d.Tips, want) {
		t.Fatalf("tips = %+v", d.Tips)
	}
	if d.Config.SortMode != "alpha" || d.Config.UITextSize != 18 || d.Config.IngredientImageSize != 64 || d.Config.TipIcon != "💡" {
		t.Fatalf("config not overlaid on defaults: %+v", d.Config)
	}
	if d.Warning != "" {
		t.Fatalf("unexpected warning %q", d.Warning)
	}
}

func TestLoadSecondaryFailuresUseDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SubDataFile, subDoc)
	writeFile(t, dir, TipsFile, `not json`)

	d, err := NewLoader(DirSource{Dir: dir}, false, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(d.Ingredients) != 0 || d.Ingredients == nil {
		t.Fatalf("expected empty ingredient catalog, got %v", d.Ingredients)
	}
	if !reflect.DeepEqual(d.Tips, GeneralTips()) {
		t.Fatalf("expected general tips fallback")
	}
	if d.Config != DefaultDisplayConfig() {
		t.Fatalf("expected default config, got %+v", d.Config)
	}
}

func TestLoadCatalogFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader(DirSource{Dir: dir}, false, nil).Load(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}

	d, err := NewLoader(DirSource{Dir: dir}, true, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("sample fallback should not fail: %v", err)
	}
	if d.Subs.Len() != SampleCatalog().Len() || d.Warning == "" {
		t.Fatalf("expected sample catalog with warning, got %d subs, warning %q", d.Subs.Len(), d.Warning)
	}
}

func TestHTTPSourceCacheBusting(t *testing.T) {
	var mu sync.Mutex
	busted := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		busted[r.URL.Path] = r.URL.Query().Get("t") != ""
		mu.Unlock()
		switch r.URL.Path {
		case "/" + SubDataFile:
			_, _ = w.Write([]byte(subDoc))
		case "/" + ConfigFile:
			_ = json.NewEncoder(w).Encode(DisplayConfig{SortMode: "category", UITextSize: 22})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d, err := NewLoader(HTTPSource{BaseURL: srv.URL + "/"}, false, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Subs.Len() != 3 || d.Config.UITextSize != 22 {
		t.Fatalf("unexpected data: %d subs, config %+v", d.Subs.Len(), d.Config)
	}
	if !busted["/"+SubDataFile] || !busted["/"+IngredientDataFile] || !busted["/"+TipsFile] {
		t.Fatalf("expected cache-busting on data documents: %v", busted)
	}
	if busted["/"+ConfigFile] {
		t.Fatalf("config fetch should not be cache-busted")
	}
	if !reflect.DeepEqual(d.Tips, GeneralTips()) {
		t.Fatalf("404 tips should fall back to general tips")
	}
}

func TestSubCatalogRoundTripKeepsOrder(t *testing.T) {
	var c SubCatalog
	if err := json.Unmarshal([]byte(subDoc), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again SubCatalog
	if err := json.Unmarshal(b, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if !reflect.DeepEqual(again.Categories(), c.Categories()) {
		t.Fatalf("order lost: %v vs %v", again.Categories(), c.Categories())
	}
	if _, ok := c.FindSub("Veggie"); !ok {
		t.Fatalf("FindSub failed")
	}
}

func TestTipRejectsBadShape(t *testing.T) {
	var tip Tip
	if err := json.Unmarshal([]byte(`{"icon": "x"}`), &tip); err == nil {
		t.Fatalf("expected error for tip without text")
	}
	if err := json.Unmarshal([]byte(`42`), &tip); err == nil {
		t.Fatalf("expected error for numeric tip")
	}
	if got := IconedTip("a", "🔥").IconOr("💡"); got != "🔥" {
		t.Fatalf("IconOr = %q", got)
	}
	if got := PlainTip("a").IconOr("💡"); got != "💡" {
		t.Fatalf("IconOr = %q", got)
	}
}
