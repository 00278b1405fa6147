// Package session defines the conversation store used by the chat bot.
// Implementations keep a bounded, expiring transcript per session.
package session

import "errors"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Roles of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store keeps conversation transcripts keyed by session id. Transcripts
// expire after a TTL and are truncated once they grow past a cap, so a
// long-running conversation keeps only its recent tail.
type Store interface {
	// Create opens a new session and returns its id.
	Create() (string, error)
	// Exists reports whether the session is known and not expired.
	Exists(id string) bool
	// Append records one turn. Unknown ids return ErrNotFound.
	Append(id string, turn Turn) error
	// History returns the retained turns in chronological order.
	History(id string) ([]Turn, error)
	// End removes the session. Ending an unknown session is a no-op.
	End(id string) error
}
