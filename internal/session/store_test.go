package session

import (
	"errors"
	"testing"
	"time"

	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/quiz"
)

func newQuiz() *quiz.Session {
	return quiz.New(catalog.SampleCatalog(), nil)
}

func TestCreateUpdateDelete(t *testing.T) {
	st := NewInMemoryStore(0)
	id, err := st.Create(newQuiz())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" || st.Len() != 1 {
		t.Fatalf("unexpected id %q len %d", id, st.Len())
	}
	err = st.Update(id, func(s *quiz.Session) error {
		s.ResetScore()
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	sentinel := errors.New("boom")
	if err := st.Update(id, func(*quiz.Session) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("update should return fn error, got %v", err)
	}
	if err := st.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Update(id, func(*quiz.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIdleSessionsAreSwept(t *testing.T) {
	st := NewInMemoryStore(time.Hour).(*memoryStore)
	now := time.Unix(1_700_000_000, 0)
	st.now = func() time.Time { return now }

	old, _ := st.Create(newQuiz())
	now = now.Add(2 * time.Hour)
	fresh, _ := st.Create(newQuiz())

	if err := st.Update(old, func(*quiz.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("idle session should be gone, got %v", err)
	}
	if err := st.Update(fresh, func(*quiz.Session) error { return nil }); err != nil {
		t.Fatalf("fresh session: %v", err)
	}
}
