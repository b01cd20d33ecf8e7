package http

import (
	"net/http"
	"path"
	"strings"

	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/storage"
)

// DocumentWriter persists one data document by file name.
type DocumentWriter interface {
	Write(name string, v any) error
}

const maxUploadBytes = 10 << 20

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

type saveResult struct {
	Saved  string          `json:"saved"`
	Issues []catalog.Issue `json:"issues"`
}

func saved(name string, c *Content) saveResult {
	res := saveResult{Saved: name, Issues: c.Issues}
	if res.Issues == nil {
		res.Issues = []catalog.Issue{}
	}
	return res
}

// IssuesHandler lists incomplete subs in the current catalog.
func IssuesHandler(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issues := lib.Current().Issues
		if issues == nil {
			issues = []catalog.Issue{}
		}
		writeJSON(w, http.StatusOK, issues)
	}
}

// saveDocument writes the document and publishes the edit in one step.
func saveDocument(w http.ResponseWriter, lib *Library, docs DocumentWriter, name string, v any, apply func(*catalog.Data)) {
	c, err := lib.Update(func(d *catalog.Data) error {
		if err := docs.Write(name, v); err != nil {
			return err
		}
		apply(d)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save "+name+": "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved(name, c))
}

func SaveSubsHandler(lib *Library, docs DocumentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var subs catalog.SubCatalog
		if !decode(w, r, &subs) {
			return
		}
		if subs.Len() == 0 && len(subs.Categories()) == 0 {
			writeError(w, http.StatusBadRequest, "at least one category required")
			return
		}
		saveDocument(w, lib, docs, catalog.SubDataFile, subs, func(d *catalog.Data) {
			d.Subs = subs
			d.Warning = ""
		})
	}
}

func SaveIngredientsHandler(lib *Library, docs DocumentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var info catalog.IngredientCatalog
		if !decode(w, r, &info) {
			return
		}
		if info == nil {
			info = catalog.IngredientCatalog{}
		}
		for name := range info {
			if strings.TrimSpace(name) == "" {
				writeError(w, http.StatusBadRequest, "ingredient name required")
				return
			}
		}
		saveDocument(w, lib, docs, catalog.IngredientDataFile, info, func(d *catalog.Data) {
			d.Ingredients = info
		})
	}
}

func SaveTipsHandler(lib *Library, docs DocumentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tips []catalog.Tip
		if !decode(w, r, &tips) {
			return
		}
		if tips == nil {
			tips = []catalog.Tip{}
		}
		saveDocument(w, lib, docs, catalog.TipsFile, tips, func(d *catalog.Data) {
			d.Tips = tips
		})
	}
}

// SaveConfigHandler overlays the body onto the defaults, as loading does.
func SaveConfigHandler(lib *Library, docs DocumentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := catalog.DefaultDisplayConfig()
		if !decode(w, r, &cfg) {
			return
		}
		if cfg.IngredientImageSize <= 0 || cfg.UITextSize <= 0 || cfg.IngredientTextSize <= 0 {
			writeError(w, http.StatusBadRequest, "sizes must be positive")
			return
		}
		saveDocument(w, lib, docs, catalog.ConfigFile, cfg, func(d *catalog.Data) {
			d.Config = cfg
		})
	}
}

// UploadImageHandler stores a multipart "file" under the optional "dir"
// form field and returns the key to reference from the catalog.
func UploadImageHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()

		name := path.Base(strings.ReplaceAll(hdr.Filename, "\\", "/"))
		if !imageExts[strings.ToLower(path.Ext(name))] {
			writeError(w, http.StatusBadRequest, "image must be png or jpeg")
			return
		}
		key := name
		if dir := strings.Trim(r.FormValue("dir"), "/"); dir != "" {
			key = dir + "/" + name
		}
		key, err = bs.Put(key, f)
		if err != nil {
			writeError(w, statusForBlob(err), "store image: "+err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key, "url": bs.URL(key)})
	}
}
