package web

import (
	"bytes"
	"encoding/json"
	"net/url"
)

const (
	MessageMalformed = "Error processing authentication"
	MessageFailed    = "Authentication failed"
)

// OutcomeKind is what the callback page does with its query
type OutcomeKind string

const (
	// OutcomeStore persists user and token, then opens the dashboard
	OutcomeStore OutcomeKind = "store"
	// OutcomeError shows Message with a retry link
	OutcomeError OutcomeKind = "error"
)

// Outcome is the result of reading the callback page query
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Action  string

	// Set only for OutcomeStore. User is compact JSON.
	User  string
	Token string
}

// Bootstrap decides what the callback page does with the redirect it received
func Bootstrap(query url.Values) Outcome {
	action := query.Get("action")

	if msg := query.Get("error"); msg != "" {
		return Outcome{Kind: OutcomeError, Message: msg, Action: action}
	}

	user, token := query.Get("user"), query.Get("token")
	if user == "" || token == "" {
		return Outcome{Kind: OutcomeError, Message: MessageFailed, Action: action}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(user)); err != nil {
		return Outcome{Kind: OutcomeError, Message: MessageMalformed, Action: action}
	}

	return Outcome{
		Kind:   OutcomeStore,
		Action: action,
		User:   compact.String(),
		Token:  token,
	}
}
