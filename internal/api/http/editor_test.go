package http

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	auth "github.com/subtrainer/subtrainer/internal/auth/middleware"
	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/prefs"
	"github.com/subtrainer/subtrainer/internal/session"
	"github.com/subtrainer/subtrainer/internal/storage"
)

func (s *testServer) doRaw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, filename, dir, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if dir != "" {
		if err := mw.WriteField("dir", dir); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func TestCatalogIssues(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/catalog/issues", "", nil)
	var issues []catalog.Issue
	decodeBody(t, rec, &issues)
	// Big John and Club Lulu have no image.
	if len(issues) != 2 {
		t.Fatalf("issues = %+v", issues)
	}
	for _, is := range issues {
		if is.Category != "Favorites" || is.Field != "image" {
			t.Fatalf("unexpected issue %+v", is)
		}
	}
}

func TestSaveSubs(t *testing.T) {
	s := newTestServer(t)
	body := `{"Originals":[{"name":"#1 The Pepe","ingredients":["Ham","Provolone"],"image":"subs/pepe.png"}],` +
		`"Specials":[{"name":"New Sub","ingredients":[],"image":""}]}`
	rec := s.doRaw(t, http.MethodPut, "/api/admin/subs", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d %s", rec.Code, rec.Body.String())
	}
	var res saveResult
	decodeBody(t, rec, &res)
	if res.Saved != catalog.SubDataFile {
		t.Fatalf("saved = %q", res.Saved)
	}
	fields := map[string]bool{}
	for _, is := range res.Issues {
		fields[is.Field] = true
	}
	if !fields["name"] || !fields["ingredients"] || !fields["image"] {
		t.Fatalf("issues = %+v", res.Issues)
	}

	if _, err := os.Stat(filepath.Join(s.dataDir, catalog.SubDataFile)); err != nil {
		t.Fatalf("document not written: %v", err)
	}
	var subs []subSummary
	decodeBody(t, s.do(t, http.MethodGet, "/api/subs", "", nil), &subs)
	if len(subs) != 2 || subs[1].Category != "Specials" {
		t.Fatalf("subs after save = %+v", subs)
	}

	if rec := s.doRaw(t, http.MethodPut, "/api/admin/subs", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty catalog = %d", rec.Code)
	}
	if rec := s.doRaw(t, http.MethodPut, "/api/admin/subs", `[`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json = %d", rec.Code)
	}
}

func TestSaveIngredientsTipsConfig(t *testing.T) {
	s := newTestServer(t)

	rec := s.doRaw(t, http.MethodPut, "/api/admin/ingredients", `{"Ham":{"category":"Meats","image":"ham.png"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingredients = %d %s", rec.Code, rec.Body.String())
	}
	var res saveResult
	decodeBody(t, rec, &res)
	// Provolone, Roast Beef and friends are now unknown keys.
	if len(res.Issues) == 0 {
		t.Fatalf("expected unknown ingredient issues")
	}
	if rec := s.doRaw(t, http.MethodPut, "/api/admin/ingredients", `{" ":{"category":"Meats"}}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank ingredient = %d", rec.Code)
	}

	rec = s.doRaw(t, http.MethodPut, "/api/admin/tips", `["Only tip",{"text":"Hot","icon":"🔥"}]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("tips = %d %s", rec.Code, rec.Body.String())
	}
	var tips []tipView
	decodeBody(t, s.do(t, http.MethodGet, "/api/tips", "", nil), &tips)
	if len(tips) != 2 || tips[0].Text != "Only tip" || tips[1].Icon != "🔥" {
		t.Fatalf("tips after save = %+v", tips)
	}

	rec = s.doRaw(t, http.MethodPut, "/api/admin/config", `{"ingredient_image_size":96}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("config = %d %s", rec.Code, rec.Body.String())
	}
	var cfg catalog.DisplayConfig
	decodeBody(t, s.do(t, http.MethodGet, "/api/config", "", nil), &cfg)
	def := catalog.DefaultDisplayConfig()
	if cfg.IngredientImageSize != 96 || cfg.UITextSize != def.UITextSize {
		t.Fatalf("config after save = %+v", cfg)
	}
	if rec := s.doRaw(t, http.MethodPut, "/api/admin/config", `{"ui_text_size":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("zero size = %d", rec.Code)
	}

	for _, name := range []string{catalog.IngredientDataFile, catalog.TipsFile, catalog.ConfigFile} {
		if _, err := os.Stat(filepath.Join(s.dataDir, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)
	rec := s.upload(t, `C:\pics\club.png`, "subs", "club-bytes")
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload = %d %s", rec.Code, rec.Body.String())
	}
	var got map[string]string
	decodeBody(t, rec, &got)
	if got["key"] != "subs/club.png" || got["url"] != "/images/subs/club.png" {
		t.Fatalf("upload result = %v", got)
	}
	rec = s.do(t, http.MethodGet, got["url"], "", nil)
	if rec.Body.String() != "club-bytes" || rec.Header().Get("X-Image-Placeholder") != "" {
		t.Fatalf("uploaded image: %d %q", rec.Code, rec.Body.String())
	}

	if rec := s.upload(t, "notes.txt", "", "x"); rec.Code != http.StatusBadRequest {
		t.Fatalf("text upload = %d", rec.Code)
	}
	if rec := s.upload(t, "x.png", "../..", "x"); rec.Code != http.StatusBadRequest {
		t.Fatalf("escaping dir = %d", rec.Code)
	}
}

func TestEditorRoutesOffByDefault(t *testing.T) {
	quiet := log.New(io.Discard, "", 0)
	fs, err := storage.NewFSStore(t.TempDir(), "/images")
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	Mount(r, Deps{
		Library:  NewLibrary(testData()),
		Sessions: session.NewInMemoryStore(time.Hour),
		Tokens:   auth.NewTokenService("test-secret", time.Hour),
		Prefs:    prefs.NewService(prefs.NewMemoryStore(), quiet),
		Images:   storage.NewImageResolver(fs, "", quiet),
	})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/tips", strings.NewReader(`[]`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("admin without editor = %d", rec.Code)
	}
}
