// Package intent carries the user's signup or login choice through the
// provider round trip as the OAuth state parameter.
//
// The state is neither signed nor persisted. Anything decoded from it is
// client supplied input: it selects which branch of the callback runs and
// seeds new account fields, but it never authenticates anything.
package intent

import (
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/tendant/breadsaver/pkg/account"
)

// Action selects the callback branch
type Action string

const (
	ActionSignup Action = "signup"
	ActionLogin  Action = "login"
)

// Descriptor is the decoded state token
type Descriptor struct {
	Action     Action             `json:"action"`
	BranchType account.BranchType `json:"branchType"`
	BakeryName string             `json:"bakeryName,omitempty"`
}

// Default is used whenever the state is missing or unreadable
func Default() Descriptor {
	return Descriptor{Action: ActionSignup, BranchType: account.BranchSingle}
}

// IsLogin reports whether the login branch should run. Any other action runs signup.
func (d Descriptor) IsLogin() bool {
	return d.Action == ActionLogin
}

// withDefaults fills missing fields
func (d Descriptor) withDefaults() Descriptor {
	if d.Action == "" {
		d.Action = ActionSignup
	}
	if d.BranchType == "" {
		d.BranchType = account.BranchSingle
	}
	return d
}

// Encode serializes the descriptor as percent-encoded JSON
func (d Descriptor) Encode() string {
	b, _ := json.Marshal(d)
	return url.QueryEscape(string(b))
}

// Decode parses a state value. Raw JSON is used verbatim; anything else is
// unescaped once, as produced by Encode.
// Malformed input yields Default and ok=false; it is never an error.
func Decode(state string) (d Descriptor, ok bool) {
	if state == "" {
		return Default(), false
	}

	if err := json.Unmarshal([]byte(state), &d); err == nil {
		return d.withDefaults(), true
	}

	unescaped, err := url.QueryUnescape(state)
	if err != nil {
		slog.Warn("Ignoring malformed OAuth state", "error", err)
		return Default(), false
	}

	d = Descriptor{}
	if err := json.Unmarshal([]byte(unescaped), &d); err != nil {
		slog.Warn("Ignoring malformed OAuth state", "error", err)
		return Default(), false
	}
	return d.withDefaults(), true
}

// FromRequest builds the descriptor for the initiate endpoint. A well formed
// state takes precedence over the bare action parameter.
func FromRequest(action, state string) Descriptor {
	if state != "" {
		if d, ok := Decode(state); ok {
			return d
		}
	}
	d := Descriptor{Action: Action(action)}
	return d.withDefaults()
}
