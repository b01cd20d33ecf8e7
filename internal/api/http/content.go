package http

import (
	"sync"

	"github.com/subtrainer/subtrainer/internal/catalog"
)

// Content is one loaded snapshot of the catalog data. Handlers treat it as
// read-only; edits build a new snapshot.
type Content struct {
	catalog.Data
	Groups []catalog.IngredientGroup
	Issues []catalog.Issue
}

func NewContent(d catalog.Data) *Content {
	board := catalog.IngredientCatalog{}
	for k, v := range d.Ingredients {
		board[k] = v
	}
	// Keys referenced by subs but absent from the ingredient catalog still
	// get a card.
	for _, s := range d.Subs.All() {
		for _, k := range s.Ingredients {
			if _, ok := board[k]; !ok {
				board[k] = catalog.Ingredient{Name: k}
			}
		}
	}
	return &Content{
		Data:   d,
		Groups: catalog.GroupIngredients(board),
		Issues: catalog.Validate(d.Subs, d.Ingredients),
	}
}

// Library holds the current Content. Quiz sessions keep the snapshot they
// were started with.
type Library struct {
	mu  sync.RWMutex
	cur *Content
}

func NewLibrary(d catalog.Data) *Library {
	return &Library{cur: NewContent(d)}
}

func (l *Library) Current() *Content {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// Update runs fn on a copy of the current data and publishes the result when
// fn succeeds. Updates are serialized.
func (l *Library) Update(fn func(d *catalog.Data) error) (*Content, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.cur.Data
	if err := fn(&d); err != nil {
		return nil, err
	}
	l.cur = NewContent(d)
	return l.cur, nil
}
