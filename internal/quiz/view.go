package quiz

import (
	"fmt"

	"github.com/subtrainer/subtrainer/internal/catalog"
)

// Choice is one multiple-choice option as shown to the user.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// Card is one ingredient group on the guess-ingredients board.
type Card struct {
	BaseName string   `json:"base_name"`
	Category string   `json:"category"`
	Image    string   `json:"image,omitempty"`
	IsLTO    bool     `json:"is_lto,omitempty"`
	Variants []string `json:"variants"`
	Selected string   `json:"selected,omitempty"`
}

// Question is the client-facing view of the current question. It never
// carries the answer before reveal.
type Question struct {
	Mode        Mode     `json:"mode"`
	Empty       bool     `json:"empty"`
	Prompt      string   `json:"prompt,omitempty"`
	SubName     string   `json:"sub_name,omitempty"`
	Image       string   `json:"image,omitempty"`
	Number      string   `json:"number,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Options     []Choice `json:"options,omitempty"`
	Board       []Card   `json:"board,omitempty"`
	Selected    []string `json:"selected,omitempty"`
	Chosen      string   `json:"chosen,omitempty"`
	CanSubmit   bool     `json:"can_submit"`
	Revealed    bool     `json:"revealed"`
	Score       Score    `json:"score"`
	Categories  []string `json:"categories"`
}

type IngredientStatus string

const (
	StatusCorrect IngredientStatus = "correct"
	StatusMissing IngredientStatus = "missing"
	StatusExtra   IngredientStatus = "extra"
	StatusNone    IngredientStatus = "none"
)

// Results describes a revealed question.
type Results struct {
	Mode          Mode   `json:"mode"`
	Correct       bool   `json:"correct"`
	SubName       string `json:"sub_name"`
	CorrectAnswer string `json:"correct_answer"`
	Chosen        string `json:"chosen,omitempty"`
	Message       string `json:"message"`
	Score         Score  `json:"score"`

	CorrectIngredients []string                    `json:"correct_ingredients,omitempty"`
	MissingIngredients []string                    `json:"missing_ingredients,omitempty"`
	ExtraIngredients   []string                    `json:"extra_ingredients,omitempty"`
	Statuses           map[string]IngredientStatus `json:"statuses,omitempty"`
	Feedback           []string                    `json:"feedback,omitempty"`
}

// Question renders the current question for display.
func (s *Session) Question() Question {
	q := Question{
		Mode:       s.mode,
		CanSubmit:  s.CanSubmit(),
		Revealed:   s.revealed,
		Score:      s.score,
		Categories: s.Categories(),
	}
	if s.current == nil {
		q.Empty = true
		q.Prompt = "No sandwiches available for quiz."
		return q
	}
	sub := *s.current
	switch s.mode {
	case ModeGuessIngredients:
		q.Prompt = fmt.Sprintf("What ingredients are in: %s?", sub.Name)
		q.SubName = sub.Name
		q.Board = s.board()
		q.Selected = s.selectedKeys()
	case ModeGuessSub:
		q.Prompt = "Which sandwich contains these ingredients?"
		q.Ingredients = append([]string(nil), sub.Ingredients...)
		q.Options = s.subChoices(false)
	case ModeGuessNumber:
		q.Prompt = fmt.Sprintf("What is the number of: %s?", sub.DisplayName())
		q.SubName = sub.DisplayName()
		q.Image = sub.Image
		for _, n := range s.options {
			q.Options = append(q.Options, Choice{Value: n, Label: "#" + n})
		}
	case ModeGuessSubByNumber:
		q.Prompt = fmt.Sprintf("Which sandwich has number #%s?", s.number)
		q.Number = s.number
		q.Options = s.subChoices(true)
	case ModeWhatIsMissing:
		q.Prompt = fmt.Sprintf("Which ingredient is missing from: %s?", sub.Name)
		q.SubName = sub.Name
		for _, k := range sub.Ingredients {
			if k != s.missing {
				q.Ingredients = append(q.Ingredients, k)
			}
		}
		for _, k := range s.options {
			q.Options = append(q.Options, Choice{Value: k, Label: k, Image: s.info[k].Image})
		}
	}
	q.Chosen = s.chosen
	return q
}

// Results describes the revealed question; it fails before Submit.
func (s *Session) Results() (Results, error) {
	if s.current == nil {
		return Results{}, ErrNoQuestion
	}
	if !s.revealed {
		return Results{}, ErrNotRevealed
	}
	sub := *s.current
	r := Results{
		Mode:          s.mode,
		Correct:       s.result.Correct,
		SubName:       sub.Name,
		CorrectAnswer: s.correctAnswer(),
		Chosen:        s.chosen,
		Score:         s.score,
		Feedback:      s.result.Feedback,
	}
	switch s.mode {
	case ModeGuessIngredients:
		r.Message = "Results for " + sub.Name + ":"
		r.Statuses = map[string]IngredientStatus{}
		for _, k := range uniq(sub.Ingredients) {
			if s.selected[k] {
				r.CorrectIngredients = append(r.CorrectIngredients, k)
				r.Statuses[k] = StatusCorrect
			} else {
				r.MissingIngredients = append(r.MissingIngredients, k)
				r.Statuses[k] = StatusMissing
			}
		}
		for _, k := range s.selectedKeys() {
			if !sub.Contains(k) {
				r.ExtraIngredients = append(r.ExtraIngredients, k)
				r.Statuses[k] = StatusExtra
			}
		}
		for k := range s.keys {
			if _, ok := r.Statuses[k]; !ok {
				r.Statuses[k] = StatusNone
			}
		}
		r.CorrectAnswer = ""
	case ModeGuessSub:
		r.Message = "The correct answer is: " + sub.Name
	case ModeGuessNumber:
		r.Message = "The correct number is: #" + s.number
	case ModeGuessSubByNumber:
		r.Message = "The correct sandwich is: " + sub.DisplayName()
	case ModeWhatIsMissing:
		r.Message = "The missing ingredient is: " + s.missing
	}
	return r, nil
}

func (s *Session) subChoices(clean bool) []Choice {
	out := make([]Choice, 0, len(s.options))
	for _, name := range s.options {
		c := Choice{Value: name, Label: name}
		if clean {
			c.Label = catalog.CleanName(name)
		}
		if sub, ok := s.subs.FindSub(name); ok {
			c.Image = sub.Image
		}
		out = append(out, c)
	}
	return out
}

func (s *Session) board() []Card {
	groups := catalog.FilterGroups(s.groups, s.boardCategory, s.boardAlpha)
	out := make([]Card, 0, len(groups))
	for _, g := range groups {
		c := Card{
			BaseName: g.BaseName,
			Category: g.Category,
			Image:    g.Image,
			IsLTO:    g.IsLTO,
			Variants: append([]string(nil), g.Variants...),
		}
		for _, v := range g.Variants {
			if s.selected[v] {
				c.Selected = v
				break
			}
		}
		out = append(out, c)
	}
	return out
}
