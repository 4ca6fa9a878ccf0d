package localisation

// SessionStore keeps open localisation modals by id.
type SessionStore interface {
	Create(s *Session) string
	Get(id string) (*Session, error)
	Delete(id string) bool
}
