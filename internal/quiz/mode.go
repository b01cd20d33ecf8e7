package quiz

import "fmt"

type Mode string

const (
	ModeGuessIngredients Mode = "guess-ingredients"
	ModeGuessSub         Mode = "guess-sub"
	ModeGuessNumber      Mode = "guess-number"
	ModeGuessSubByNumber Mode = "guess-sub-by-number"
	ModeWhatIsMissing    Mode = "what-is-missing"
)

var modes = []Mode{ModeGuessIngredients, ModeGuessSub, ModeGuessNumber, ModeGuessSubByNumber, ModeWhatIsMissing}

// Modes lists every quiz mode in menu order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// numbered modes only draw subs whose name carries "#<digits>".
func (m Mode) numbered() bool {
	return m == ModeGuessNumber || m == ModeGuessSubByNumber
}

// multipleChoice modes need a staged option before submitting.
func (m Mode) multipleChoice() bool {
	return m != ModeGuessIngredients
}

func (m Mode) Label() string {
	switch m {
	case ModeGuessIngredients:
		return "Guess Ingredients"
	case ModeGuessSub:
		return "Guess Sub Name"
	case ModeGuessNumber:
		return "Guess Sub Number"
	case ModeGuessSubByNumber:
		return "Guess Sub by Number"
	case ModeWhatIsMissing:
		return "What's Missing"
	}
	return string(m)
}
