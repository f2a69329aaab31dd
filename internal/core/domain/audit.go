package domain

import "time"

// AuthEventKind names the flow an audit event was produced by.
type AuthEventKind string

const (
	EventSignup AuthEventKind = "signup"
	EventLogin  AuthEventKind = "login"
	EventLogout AuthEventKind = "logout"
)

// AuthEvent is one entry of the authentication audit trail. Reason is for
// operators only and is never shown to the client.
type AuthEvent struct {
	Kind       AuthEventKind
	Email      string
	Username   string
	Success    bool
	Reason     string
	OccurredAt time.Time
}
