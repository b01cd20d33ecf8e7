package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/subtrainer/subtrainer/internal/auth/middleware"
	"github.com/subtrainer/subtrainer/internal/prefs"
	"github.com/subtrainer/subtrainer/internal/session"
	"github.com/subtrainer/subtrainer/internal/storage"
	"github.com/subtrainer/subtrainer/internal/views"
)

type Deps struct {
	Library  *Library
	Sessions session.Store
	Tokens   *auth.TokenService
	Prefs    *prefs.Service
	Images   *storage.ImageResolver
	Views    *views.Renderer

	// Documents and Blobs back the editor routes; they are only mounted
	// when Documents is set.
	Documents DocumentWriter
	Blobs     storage.BlobStore

	// Ready reports whether backing services are reachable; nil means always ready.
	Ready func(ctx context.Context) error
}

// Mount registers every route on r.
func Mount(r chi.Router, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/catalog", CatalogHandler(d.Library))
		ar.Get("/catalog/issues", IssuesHandler(d.Library))
		ar.Get("/subs", ListSubsHandler(d.Library, d.Images))
		ar.Get("/subs/{name}", GetSubHandler(d.Library, d.Images))
		ar.Get("/ingredients", IngredientsHandler(d.Library, d.Images))
		ar.Get("/tips", TipsHandler(d.Library))
		ar.Get("/tips/random", RandomTipHandler(d.Library))
		ar.Get("/config", ConfigHandler(d.Library))

		ar.Get("/prefs/zoom", GetZoomHandler(d.Prefs))
		ar.Post("/prefs/zoom", SetZoomHandler(d.Prefs))

		ar.Get("/quiz/modes", ModesHandler())
		ar.Post("/quiz", StartQuizHandler(d.Library, d.Sessions, d.Tokens))
		ar.Group(func(qr chi.Router) {
			qr.Use(auth.SessionMiddleware(d.Tokens))
			qr.Get("/quiz", GetQuizHandler(d.Sessions))
			qr.Delete("/quiz", EndQuizHandler(d.Sessions, d.Tokens))
			qr.Post("/quiz/mode", SetModeHandler(d.Sessions))
			qr.Post("/quiz/next", NextQuestionHandler(d.Sessions))
			qr.Post("/quiz/ingredients/{key}/toggle", ToggleIngredientHandler(d.Sessions))
			qr.Post("/quiz/groups/{base}/variant", SelectVariantHandler(d.Sessions))
			qr.Post("/quiz/option", SelectOptionHandler(d.Sessions))
			qr.Post("/quiz/submit", SubmitHandler(d.Sessions))
			qr.Post("/quiz/score/reset", ResetScoreHandler(d.Sessions))
			qr.Put("/quiz/categories", SetCategoriesHandler(d.Sessions))
			qr.Post("/quiz/categories/{name}/toggle", ToggleCategoryHandler(d.Sessions))
			qr.Put("/quiz/board", SetBoardHandler(d.Sessions))
		})

		if d.Documents != nil {
			ar.Route("/admin", func(er chi.Router) {
				er.Put("/subs", SaveSubsHandler(d.Library, d.Documents))
				er.Put("/ingredients", SaveIngredientsHandler(d.Library, d.Documents))
				er.Put("/tips", SaveTipsHandler(d.Library, d.Documents))
				er.Put("/config", SaveConfigHandler(d.Library, d.Documents))
				if d.Blobs != nil {
					er.Post("/images", UploadImageHandler(d.Blobs))
				}
			})
		}
	})

	r.Route("/images", func(ir chi.Router) {
		MountImages(ir, d.Images)
	})
	r.Get("/"+storage.PlaceholderKey, PlaceholderHandler(d.Images))

	r.Get("/", ListPageHandler(d.Library, d.Prefs, d.Views))
	r.Get("/subs/{name}", DetailPageHandler(d.Library, d.Prefs, d.Views))
	r.Get("/ingredients", IngredientsPageHandler(d.Library, d.Prefs, d.Views))
	r.Get("/tips", TipsPageHandler(d.Library, d.Prefs, d.Views))
	r.Get("/export/study-sheet.xlsx", StudySheetHandler(d.Library))
}
