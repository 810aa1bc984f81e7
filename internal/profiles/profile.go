package profiles

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"

	"google.golang.org/genai"
)

// DefaultPronouns is used for every synthesized profile.
const DefaultPronouns = "they/them"

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the two conversation roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Turn is one message in a conversation history.
type Turn struct {
	Role Role
	Text string
}

type wirePart struct {
	Text string `json:"text"`
}

type wireTurn struct {
	Role  Role       `json:"role"`
	Parts []wirePart `json:"parts"`
}

// MarshalJSON writes a turn as {"role": ..., "parts": [{"text": ...}]}.
func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTurn{Role: t.Role, Parts: []wirePart{{Text: t.Text}}})
}

// UnmarshalJSON joins every part of a stored turn into one text. Roles other
// than user and model are rejected.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var w wireTurn
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Role.Valid() {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidRole, w.Role)
	}

	var b strings.Builder
	for _, p := range w.Parts {
		b.WriteString(p.Text)
	}

	t.Role = w.Role
	t.Text = b.String()
	return nil
}

// Profile is a persisted identity with its conversation history.
type Profile struct {
	PreferredName string `json:"preferred_name"`
	Pronouns      string `json:"pronouns"`
	Context       string `json:"context"`
	History       []Turn `json:"conversation_history"`
}

// NewDefault returns the profile synthesized for a name with no usable artifact.
func NewDefault(name string) *Profile {
	return &Profile{
		PreferredName: name,
		Pronouns:      DefaultPronouns,
		Context:       "",
		History:       []Turn{},
	}
}

// Append adds a turn to the end of the history.
func (p *Profile) Append(role Role, text string) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidRole, role)
	}
	p.History = append(p.History, Turn{Role: role, Text: text})
	return nil
}

// ClearHistory empties the history in place.
func (p *Profile) ClearHistory() {
	p.History = []Turn{}
}

// Contents converts the history to the message form the chat client sends.
func (p *Profile) Contents() []*genai.Content {
	contents := make([]*genai.Content, 0, len(p.History))
	for _, turn := range p.History {
		contents = append(contents, &genai.Content{
			Role:  string(turn.Role),
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return contents
}

func encode(p *Profile) ([]byte, error) {
	out := *p
	if out.History == nil {
		out.History = []Turn{}
	}
	return json.MarshalIndent(&out, "", "    ")
}

func decode(data []byte) (*Profile, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", kerrors.ErrMalformedProfile)
	}

	var p *Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: not a JSON object", kerrors.ErrMalformedProfile)
	}
	if p.History == nil {
		p.History = []Turn{}
	}
	return p, nil
}
