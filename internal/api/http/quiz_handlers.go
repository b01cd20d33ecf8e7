package http

import (
	"net/http"

	auth "github.com/subtrainer/subtrainer/internal/auth/middleware"
	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/quiz"
	"github.com/subtrainer/subtrainer/internal/session"
)

type modeView struct {
	Mode  quiz.Mode `json:"mode"`
	Label string    `json:"label"`
}

// ModesHandler lists the quiz modes in menu order.
func ModesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []modeView{}
		for _, m := range quiz.Modes() {
			out = append(out, modeView{Mode: m, Label: m.Label()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type quizState struct {
	Question quiz.Question `json:"question"`
	Results  *quiz.Results `json:"results,omitempty"`
}

func stateOf(s *quiz.Session) quizState {
	st := quizState{Question: s.Question()}
	if res, err := s.Results(); err == nil {
		st.Results = &res
	}
	return st
}

// quizAction runs fn against the caller's session and writes the resulting state.
func quizAction(sessions session.Store, w http.ResponseWriter, r *http.Request, fn func(*quiz.Session) error) {
	id := auth.SessionFromContext(r.Context())
	var st quizState
	err := sessions.Update(id, func(s *quiz.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		st = stateOf(s)
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// StartQuizHandler creates a session and returns the token that binds the
// client to it.
func StartQuizHandler(lib *Library, sessions session.Store, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := lib.Current()
		var req struct {
			Mode       string   `json:"mode"`
			Categories []string `json:"categories"`
		}
		if !decodeOptional(w, r, &req) {
			return
		}
		mode := quiz.ModeGuessIngredients
		if req.Mode != "" {
			m, err := quiz.ParseMode(req.Mode)
			if err != nil {
				writeErr(w, err)
				return
			}
			mode = m
		}
		for _, cat := range req.Categories {
			if !c.Subs.HasCategory(cat) {
				writeError(w, http.StatusBadRequest, "unknown category: "+cat)
				return
			}
		}
		s := quiz.New(c.Subs, c.Ingredients, quiz.WithMode(mode), quiz.WithCategories(req.Categories...))
		id, err := sessions.Create(s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		tok, err := tokens.Issue(id)
		if err != nil {
			_ = sessions.Delete(id)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		tokens.SetCookie(w, tok)
		writeJSON(w, http.StatusCreated, struct {
			Token string `json:"token"`
			quizState
		}{Token: tok, quizState: stateOf(s)})
	}
}

func GetQuizHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizAction(sessions, w, r, func(*quiz.Session) error { return nil })
	}
}

func EndQuizHandler(sessions session.Store, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Delete(auth.SessionFromContext(r.Context())); err != nil {
			writeErr(w, err)
			return
		}
		tokens.ClearCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func SetModeHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Mode string `json:"mode"`
		}
		if !decode(w, r, &req) {
			return
		}
		m, err := quiz.ParseMode(req.Mode)
		if err != nil {
			writeErr(w, err)
			return
		}
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.SetMode(m) })
	}
}

func NextQuestionHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizAction(sessions, w, r, func(s *quiz.Session) error {
			s.Next()
			return nil
		})
	}
}

func ToggleIngredientHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := urlParam(r, "key")
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.ToggleIngredient(key) })
	}
}

func SelectVariantHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := urlParam(r, "base")
		var req struct {
			Variant string `json:"variant"`
		}
		if !decode(w, r, &req) {
			return
		}
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.SelectVariant(base, req.Variant) })
	}
}

func SelectOptionHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Option string `json:"option"`
		}
		if !decode(w, r, &req) {
			return
		}
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.SelectOption(req.Option) })
	}
}

func SubmitHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizAction(sessions, w, r, func(s *quiz.Session) error {
			_, err := s.Submit(r.Context())
			return err
		})
	}
}

func ResetScoreHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizAction(sessions, w, r, func(s *quiz.Session) error {
			s.ResetScore()
			return nil
		})
	}
}

func SetCategoriesHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Categories []string `json:"categories"`
		}
		if !decode(w, r, &req) {
			return
		}
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.SetCategoryFilter(req.Categories) })
	}
}

func ToggleCategoryHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := urlParam(r, "name")
		quizAction(sessions, w, r, func(s *quiz.Session) error { return s.ToggleCategory(name) })
	}
}

// SetBoardHandler changes the ingredient board's category and sort order.
func SetBoardHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Category string `json:"category"`
			Sort     string `json:"sort"`
		}
		if !decode(w, r, &req) {
			return
		}
		quizAction(sessions, w, r, func(s *quiz.Session) error {
			s.SetBoardFilter(req.Category, catalog.AlphaSort(req.Sort))
			return nil
		})
	}
}
