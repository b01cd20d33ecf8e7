package quiz

import "errors"

var (
	ErrUnknownMode       = errors.New("unknown quiz mode")
	ErrNoQuestion        = errors.New("no question available")
	ErrNoAnswer          = errors.New("no answer selected")
	ErrAlreadyRevealed   = errors.New("answer already revealed")
	ErrNotRevealed       = errors.New("answer not revealed yet")
	ErrWrongMode         = errors.New("action not available in this quiz mode")
	ErrUnknownOption     = errors.New("option is not offered for this question")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrEmptyFilter       = errors.New("at least one category must stay selected")
	ErrUnknownCategory   = errors.New("unknown category")
)
