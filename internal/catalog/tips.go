package catalog

import (
	"encoding/json"
	"errors"
)

type TipKind int

const (
	TipPlain TipKind = iota
	TipIconed
)

// Tip is either plain text or text with its own icon. The shape is decided
// once when the tips document is decoded.
type Tip struct {
	Kind TipKind
	Text string
	Icon string
}

func PlainTip(text string) Tip        { return Tip{Kind: TipPlain, Text: text} }
func IconedTip(text, icon string) Tip { return Tip{Kind: TipIconed, Text: text, Icon: icon} }

// IconOr returns the tip's own icon, or def for plain tips.
func (t Tip) IconOr(def string) string {
	if t.Kind == TipIconed && t.Icon != "" {
		return t.Icon
	}
	return def
}

func (t *Tip) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = PlainTip(s)
		return nil
	}
	var obj struct {
		Text *string `json:"text"`
		Icon string  `json:"icon"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return errors.New("tip must be a string or an object with text")
	}
	if obj.Text == nil {
		return errors.New("tip object missing text")
	}
	if obj.Icon == "" {
		*t = PlainTip(*obj.Text)
		return nil
	}
	*t = IconedTip(*obj.Text, obj.Icon)
	return nil
}

func (t Tip) MarshalJSON() ([]byte, error) {
	if t.Kind == TipIconed {
		return json.Marshal(struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		}{t.Text, t.Icon})
	}
	return json.Marshal(t.Text)
}
