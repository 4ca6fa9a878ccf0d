// Package localisation serves the localisation modal: one state machine per
// open modal, addressed by session id.
package localisation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	"github.com/kailas-cloud/eacsearch/internal/domain/institution"
	domloc "github.com/kailas-cloud/eacsearch/internal/domain/localisation"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/eacsearch/internal/logger"
)

// Action is a navigation request inside the modal.
type Action string

// Modal actions.
const (
	ActionOpenDepartments Action = "open-departments"
	ActionOpenAcademies   Action = "open-academies"
	ActionOpenGeolocation Action = "open-geolocation"
	ActionReset           Action = "reset"
	ActionCancel          Action = "cancel"
)

// IsValid checks if the action is one of the supported values.
func (a Action) IsValid() bool {
	switch a {
	case ActionOpenDepartments, ActionOpenAcademies, ActionOpenGeolocation, ActionReset, ActionCancel:
		return true
	}
	return false
}

// Session is one open modal.
type Session struct {
	mu      sync.Mutex
	env     domloc.Env
	machine domloc.Machine
}

// View is a snapshot of a session.
type View struct {
	ID           string
	Mode         domloc.Mode
	Departments  []string
	Academies    []string
	RadiusKm     int
	CanGeolocate bool
}

// Values edits the working buffer of the current sub-panel. Only the field
// matching the mode may be set.
type Values struct {
	Departments []string
	Academies   []string
	RadiusKm    *int
}

// Service handles localisation modal sessions.
type Service struct {
	sessions SessionStore
	toggles  feature.Toggles
}

// New creates a localisation service.
func New(sessions SessionStore, toggles feature.Toggles) *Service {
	return &Service{sessions: sessions, toggles: toggles}
}

// Open starts a modal for inst, resuming on the panel matching what sel
// already commits.
func (s *Service) Open(ctx context.Context, inst institution.Institution, sel filter.Selection) View {
	env := domloc.Env{Toggles: s.toggles, Institution: inst}
	sess := &Session{env: env, machine: domloc.FromSelection(sel, env)}
	id := s.sessions.Create(sess)
	logger.FromContext(ctx).Debug("localisation session opened",
		zap.String("session_id", id), zap.String("mode", string(sess.machine.Mode())))
	return sess.view(id)
}

// Get returns the current state of a session.
func (s *Service) Get(id string) (View, error) {
	sess, err := s.get(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(id), nil
}

// Apply runs a navigation action. A refused transition leaves the session
// unchanged and returns its state along with ErrTransitionRefused.
func (s *Service) Apply(ctx context.Context, id string, action Action) (View, error) {
	if !action.IsValid() {
		return View{}, fmt.Errorf("action %q: %w", action, domain.ErrUnknownAction)
	}
	sess, err := s.get(id)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := sess.machine
	switch action {
	case ActionOpenDepartments:
		m = m.OpenDepartments()
	case ActionOpenAcademies:
		m = m.OpenAcademies()
	case ActionOpenGeolocation:
		next, ok := m.OpenGeolocation(sess.env)
		if !ok {
			logger.FromContext(ctx).Debug("geolocation refused",
				zap.String("session_id", id),
				zap.Bool("toggle", sess.env.Toggles.GeolocationEnabled),
				zap.Bool("located", sess.env.Institution.HasValidLocation()))
			return sess.view(id), domain.NewTransitionRefused(string(action), string(m.Mode()))
		}
		m = next
	case ActionReset:
		m = m.Reset()
	case ActionCancel:
		m = m.Cancel()
	}
	sess.machine = m
	return sess.view(id), nil
}

// SetValues edits the working buffer of the current sub-panel.
func (s *Service) SetValues(_ context.Context, id string, v Values) (View, error) {
	sess, err := s.get(id)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := sess.machine
	var (
		ok     bool
		action string
	)
	switch m.Mode() {
	case domloc.Departments:
		action = "set-departments"
		if v.Academies == nil && v.RadiusKm == nil {
			m, ok = m.SetDepartments(v.Departments)
		}
	case domloc.Academies:
		action = "set-academies"
		if v.Departments == nil && v.RadiusKm == nil {
			m, ok = m.SetAcademies(v.Academies)
		}
	case domloc.Geolocation:
		action = "set-radius"
		if v.Departments == nil && v.Academies == nil && v.RadiusKm != nil {
			m, ok = m.SetRadius(*v.RadiusKm)
		}
	default:
		action = "set-values"
	}
	if !ok {
		return sess.view(id), domain.NewTransitionRefused(action, string(sess.machine.Mode()))
	}
	sess.machine = m
	return sess.view(id), nil
}

// Commit applies the working buffer to sel and returns the selection to
// search with.
func (s *Service) Commit(ctx context.Context, id string, sel filter.Selection) (filter.Selection, View, error) {
	sess, err := s.get(id)
	if err != nil {
		return filter.Selection{}, View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out, next := sess.machine.Commit(sel)
	sess.machine = next
	logger.FromContext(ctx).Debug("localisation committed",
		zap.String("session_id", id),
		zap.String("mode", string(next.Mode())),
		zap.Bool("has_localisation", out.HasLocalisation()))
	return out, sess.view(id), nil
}

// Close forgets a session.
func (s *Service) Close(id string) error {
	if !s.sessions.Delete(id) {
		return fmt.Errorf("close localisation session %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

func (s *Service) get(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get localisation session: %w", err)
	}
	return sess, nil
}

// view must be called with mu held, or before the session is shared.
func (sess *Session) view(id string) View {
	return View{
		ID:           id,
		Mode:         sess.machine.Mode(),
		Departments:  sess.machine.Departments(),
		Academies:    sess.machine.Academies(),
		RadiusKm:     sess.machine.Radius(),
		CanGeolocate: sess.env.CanGeolocate(),
	}
}
