package quiz

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/grading"
)

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type Option func(*Session)

// WithRand fixes the random source, mainly for tests.
func WithRand(r *rand.Rand) Option { return func(s *Session) { s.rng = r } }

func WithMode(m Mode) Option { return func(s *Session) { s.mode = m } }

func WithGrader(g grading.Grader) Option { return func(s *Session) { s.grader = g } }

// WithCategories starts the session with a restricted category filter.
// Unknown names are ignored; an empty result keeps every category.
func WithCategories(names ...string) Option {
	return func(s *Session) { s.initialFilter = names }
}

// Session is one user's quiz: the current question, what has been staged as
// an answer, whether it has been revealed, and the running score.
type Session struct {
	subs   catalog.SubCatalog
	info   catalog.IngredientCatalog
	groups []catalog.IngredientGroup
	keys   map[string]bool
	grader grading.Grader
	rng    *rand.Rand

	mode          Mode
	filter        map[string]bool
	initialFilter []string

	current  *catalog.Sub
	number   string
	missing  string
	options  []string
	selected map[string]bool
	chosen   string
	revealed bool
	result   grading.Result
	score    Score

	boardCategory string
	boardAlpha    bool
}

// New builds a session over the catalog and draws the first question.
func New(subs catalog.SubCatalog, info catalog.IngredientCatalog, opts ...Option) *Session {
	s := &Session{
		subs:     subs,
		info:     info,
		mode:     ModeGuessIngredients,
		selected: map[string]bool{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.grader == nil {
		s.grader = grading.NewDefaultGrader()
	}
	if _, err := ParseMode(string(s.mode)); err != nil {
		s.mode = ModeGuessIngredients
	}

	s.keys = map[string]bool{}
	board := catalog.IngredientCatalog{}
	for k, v := range info {
		s.keys[k] = true
		board[k] = v
	}
	for _, sub := range subs.All() {
		for _, k := range sub.Ingredients {
			if !s.keys[k] {
				s.keys[k] = true
				board[k] = catalog.Ingredient{Name: k}
			}
		}
	}
	s.groups = catalog.GroupIngredients(board)

	s.filter = map[string]bool{}
	for _, c := range s.initialFilter {
		if subs.HasCategory(c) {
			s.filter[c] = true
		}
	}
	if len(s.filter) == 0 {
		for _, c := range subs.Categories() {
			s.filter[c] = true
		}
	}
	s.draw()
	return s
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) Score() Score { return s.score }

func (s *Session) Revealed() bool { return s.revealed }

// Current returns the sub the current question is about.
func (s *Session) Current() (catalog.Sub, bool) {
	if s.current == nil {
		return catalog.Sub{}, false
	}
	return *s.current, true
}

// SetMode switches mode, which starts a new mode session: the score is
// zeroed and a new question is drawn. Re-selecting the active mode only
// draws a new question.
func (s *Session) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	if m != s.mode {
		s.mode = m
		s.score = Score{}
	}
	s.draw()
	return nil
}

// Next draws a new question in the current mode and keeps the score.
func (s *Session) Next() { s.draw() }

// ResetScore zeroes both counters without touching the current question.
func (s *Session) ResetScore() { s.score = Score{} }

// Categories returns the active category filter in catalog order.
func (s *Session) Categories() []string {
	var out []string
	for _, c := range s.subs.Categories() {
		if s.filter[c] {
			out = append(out, c)
		}
	}
	return out
}

// SetCategoryFilter replaces the filter and re-draws. An empty or unknown set
// is rejected and the previous filter stays.
func (s *Session) SetCategoryFilter(names []string) error {
	next := map[string]bool{}
	for _, n := range names {
		if !s.subs.HasCategory(n) {
			return ErrUnknownCategory
		}
		next[n] = true
	}
	if len(next) == 0 {
		return ErrEmptyFilter
	}
	s.filter = next
	s.draw()
	return nil
}

// ToggleCategory adds or removes one category. Removing the last selected
// category is refused.
func (s *Session) ToggleCategory(name string) error {
	if !s.subs.HasCategory(name) {
		return ErrUnknownCategory
	}
	if s.filter[name] {
		if len(s.filter) == 1 {
			return ErrEmptyFilter
		}
		delete(s.filter, name)
	} else {
		s.filter[name] = true
	}
	s.draw()
	return nil
}

// SetBoardFilter changes which ingredient cards the guess-ingredients board
// shows. It does not affect the selection or the answer.
func (s *Session) SetBoardFilter(category string, alpha bool) {
	s.boardCategory = category
	s.boardAlpha = alpha
}

// ToggleIngredient flips one ingredient card. Turning on a variant of a
// grouped ingredient clears the group's other variants.
func (s *Session) ToggleIngredient(key string) error {
	if err := s.editable(ModeGuessIngredients); err != nil {
		return err
	}
	if !s.keys[key] {
		return ErrUnknownIngredient
	}
	if s.selected[key] {
		delete(s.selected, key)
		return nil
	}
	if g, ok := catalog.GroupFor(s.groups, key); ok {
		for _, v := range g.Variants {
			delete(s.selected, v)
		}
	}
	s.selected[key] = true
	return nil
}

// SelectVariant picks one variant of a group, or none when variant is "".
func (s *Session) SelectVariant(base, variant string) error {
	if err := s.editable(ModeGuessIngredients); err != nil {
		return err
	}
	var group *catalog.IngredientGroup
	for i := range s.groups {
		if s.groups[i].BaseName == base {
			group = &s.groups[i]
			break
		}
	}
	if group == nil {
		return ErrUnknownIngredient
	}
	if variant != "" && !group.HasVariant(variant) {
		return ErrUnknownIngredient
	}
	for _, v := range group.Variants {
		delete(s.selected, v)
	}
	if variant != "" {
		s.selected[variant] = true
	}
	return nil
}

// SelectOption stages one of the offered options.
func (s *Session) SelectOption(opt string) error {
	if s.current == nil {
		return ErrNoQuestion
	}
	if s.revealed {
		return ErrAlreadyRevealed
	}
	if !s.mode.multipleChoice() {
		return ErrWrongMode
	}
	for _, o := range s.options {
		if o == opt {
			s.chosen = opt
			return nil
		}
	}
	return ErrUnknownOption
}

// CanSubmit reports whether Submit would be accepted.
func (s *Session) CanSubmit() bool {
	if s.current == nil || s.revealed {
		return false
	}
	return !s.mode.multipleChoice() || s.chosen != ""
}

// Submit grades the staged answer, updates the score and reveals the answer.
func (s *Session) Submit(ctx context.Context) (Results, error) {
	if s.current == nil {
		return Results{}, ErrNoQuestion
	}
	if s.revealed {
		return Results{}, ErrAlreadyRevealed
	}
	if s.mode.multipleChoice() && s.chosen == "" {
		return Results{}, ErrNoAnswer
	}

	q := grading.Q{Mode: string(s.mode), AnswerKey: []string{s.correctAnswer()}}
	var response interface{} = s.chosen
	if s.mode == ModeGuessIngredients {
		q.AnswerKey = s.current.Ingredients
		response = s.selectedKeys()
	}
	res, err := s.grader.Grade(ctx, q, response)
	if err != nil {
		return Results{}, err
	}
	s.result = res
	s.revealed = true
	s.score.Total++
	if res.Correct {
		s.score.Correct++
	}
	return s.Results()
}

func (s *Session) editable(m Mode) error {
	if s.current == nil {
		return ErrNoQuestion
	}
	if s.mode != m {
		return ErrWrongMode
	}
	if s.revealed {
		return ErrAlreadyRevealed
	}
	return nil
}

func (s *Session) correctAnswer() string {
	switch s.mode {
	case ModeGuessNumber:
		return s.number
	case ModeWhatIsMissing:
		return s.missing
	default:
		return s.current.Name
	}
}

func (s *Session) selectedKeys() []string {
	out := make([]string, 0, len(s.selected))
	for k := range s.selected {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// draw resets per-question state and picks a new question for the mode.
func (s *Session) draw() {
	s.current = nil
	s.number = ""
	s.missing = ""
	s.options = nil
	s.selected = map[string]bool{}
	s.chosen = ""
	s.revealed = false
	s.result = grading.Result{}

	pool := s.pool()
	if len(pool) == 0 {
		return
	}
	sub := pool[s.rng.Intn(len(pool))]
	s.current = &sub
	s.number, _ = sub.Number()

	switch s.mode {
	case ModeGuessSub:
		s.options = BuildOptions(s.rng, sub.Name, subNames(s.modeSubs()))
	case ModeGuessSubByNumber:
		s.options = BuildOptions(s.rng, sub.Name, subNames(s.modeSubs()))
	case ModeGuessNumber:
		var nums []string
		for _, o := range s.modeSubs() {
			if n, ok := o.Number(); ok {
				nums = append(nums, n)
			}
		}
		s.options = BuildOptions(s.rng, s.number, nums)
	case ModeWhatIsMissing:
		distinct := uniq(sub.Ingredients)
		s.missing = distinct[s.rng.Intn(len(distinct))]
		var absent []string
		for k := range s.keys {
			if !sub.Contains(k) {
				absent = append(absent, k)
			}
		}
		s.options = BuildOptions(s.rng, s.missing, absent)
	}
}

// modeSubs is the catalog restricted by the mode's eligibility rule only.
func (s *Session) modeSubs() []catalog.Sub {
	return s.eligible(s.subs.All())
}

// pool is modeSubs further restricted by the category filter, falling back
// to modeSubs when the filter leaves nothing.
func (s *Session) pool() []catalog.Sub {
	filtered := s.eligible(s.subs.InCategories(s.filter))
	if len(filtered) > 0 {
		return filtered
	}
	return s.modeSubs()
}

func (s *Session) eligible(subs []catalog.Sub) []catalog.Sub {
	out := make([]catalog.Sub, 0, len(subs))
	for _, sub := range subs {
		if s.mode.numbered() {
			if _, ok := sub.Number(); !ok {
				continue
			}
		}
		if s.mode == ModeWhatIsMissing && len(sub.Ingredients) == 0 {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func subNames(subs []catalog.Sub) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Name)
	}
	return out
}

func uniq(xs []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
