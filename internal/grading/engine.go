package grading

import (
	"context"
	"errors"
	"fmt"
)

// Q is the minimal view of a question needed for grading.
type Q struct {
	Mode      string
	AnswerKey []string
}

// Result is the outcome of grading one answer. There is no partial credit.
type Result struct {
	Correct  bool     `json:"correct"`
	Feedback []string `json:"feedback,omitempty"`
}

// Strategy grades a single question.
type Strategy interface {
	Grade(ctx context.Context, q Q, response interface{}) (Result, error)
}

// Grader routes by quiz mode to the correct Strategy.
type Grader interface {
	Grade(ctx context.Context, q Q, response interface{}) (Result, error)
}

var ErrUnknownMode = errors.New("no grading strategy for mode")

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(ctx context.Context, q Q, response interface{}) (Result, error) {
	s, ok := g.strategies[q.Mode]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, q.Mode)
	}
	return s.Grade(ctx, q, response)
}

// NewDefaultGrader installs the built-in strategies for every quiz mode.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[string]Strategy{
			"guess-ingredients":   setStrategy{},
			"guess-sub":           exactStrategy{},
			"guess-number":        exactStrategy{},
			"guess-sub-by-number": exactStrategy{},
			"what-is-missing":     exactStrategy{},
		},
	}
}

// --- Strategies ---

type exactStrategy struct{}

func (exactStrategy) Grade(_ context.Context, q Q, response interface{}) (Result, error) {
	resp, ok := response.(string)
	if !ok {
		return Result{}, errors.New("response must be string")
	}
	for _, k := range q.AnswerKey {
		if resp == k {
			return Result{Correct: true}, nil
		}
	}
	return Result{}, nil
}

// setStrategy is correct only when the selection equals the key as a set.
type setStrategy struct{}

func (setStrategy) Grade(_ context.Context, q Q, response interface{}) (Result, error) {
	respSlice, ok := toStringSlice(response)
	if !ok {
		return Result{}, errors.New("response must be []string")
	}
	correct := toSet(q.AnswerKey)
	resp := toSet(respSlice)
	if setEqual(correct, resp) {
		return Result{Correct: true}, nil
	}
	var res Result
	missing, extra := 0, 0
	for k := range correct {
		if _, ok := resp[k]; !ok {
			missing++
		}
	}
	for k := range resp {
		if _, ok := correct[k]; !ok {
			extra++
		}
	}
	res.Feedback = append(res.Feedback, fmt.Sprintf("missing: %d, extra: %d", missing, extra))
	return res, nil
}

// helpers

func toStringSlice(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
