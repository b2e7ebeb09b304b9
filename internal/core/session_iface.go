package core

// SessionID identifies one transport connection. A browser that opens two
// sockets gets two sessions.
type SessionID string

// MemberSession binds a session id to its transport endpoint.
// Rooms never hold it: they only know session ids.
type MemberSession interface {
	ID() SessionID
	Signal() SignalConnection
}
