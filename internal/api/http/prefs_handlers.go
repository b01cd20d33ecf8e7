package http

import (
	"net/http"

	"github.com/subtrainer/subtrainer/internal/prefs"
)

type zoomView struct {
	Zoom float64 `json:"zoom"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

func zoomOf(z float64) zoomView {
	return zoomView{Zoom: z, Min: prefs.MinZoom, Max: prefs.MaxZoom, Step: prefs.ZoomStep}
}

func GetZoomHandler(svc *prefs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, zoomOf(svc.Zoom(r.Context())))
	}
}

// SetZoomHandler accepts {"delta": 0.1} or {"value": 1.2}; values are clamped.
func SetZoomHandler(svc *prefs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Delta *float64 `json:"delta"`
			Value *float64 `json:"value"`
		}
		if !decode(w, r, &req) {
			return
		}
		var (
			z   float64
			err error
		)
		switch {
		case req.Value != nil:
			z, err = svc.SetZoom(r.Context(), *req.Value)
		case req.Delta != nil:
			z, err = svc.AdjustZoom(r.Context(), *req.Delta)
		default:
			writeError(w, http.StatusBadRequest, "delta or value required")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, zoomOf(z))
	}
}
