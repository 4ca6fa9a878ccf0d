// Package localisation implements the localisation filter modal as an explicit
// finite-state machine. Transitions are pure: each returns a new Machine and
// leaves the receiver untouched.
package localisation

import (
	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	"github.com/kailas-cloud/eacsearch/internal/domain/institution"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
)

// Mode is the sub-panel shown inside the localisation modal.
type Mode string

// Localisation modes.
const (
	None        Mode = "none"
	Departments Mode = "departments"
	Academies   Mode = "academies"
	Geolocation Mode = "geolocation"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == None || m == Departments || m == Academies || m == Geolocation
}

// Env is what the geolocation guard needs to know about the caller.
type Env struct {
	Toggles     feature.Toggles
	Institution institution.Institution
}

// CanGeolocate reports whether the geolocation sub-panel is reachable.
func (e Env) CanGeolocate() bool {
	return e.Toggles.GeolocationEnabled && e.Institution.HasValidLocation()
}

// Machine holds the current mode and the working buffers of each sub-panel.
// At most one buffer is non-empty at any time.
type Machine struct {
	mode            Mode
	departments     []string
	academies       []string
	radius          int
	committedRadius int
}

// New returns a machine in NONE with empty buffers.
func New() Machine {
	return Machine{mode: None, radius: filter.DefaultGeolocRadius, committedRadius: filter.DefaultGeolocRadius}
}

// FromSelection resumes the machine on the sub-panel matching what is already
// committed, so reopening the modal shows the same panel. A committed
// geolocation only resumes when env passes the guard; otherwise the machine
// falls back to the departments or academies buffer, or NONE.
func FromSelection(sel filter.Selection, env Env) Machine {
	m := New()
	if sel.GeolocRadius > 0 {
		m.committedRadius = clampRadius(sel.GeolocRadius)
		m.radius = m.committedRadius
	}
	switch {
	case sel.Geoloc && env.CanGeolocate():
		m.mode = Geolocation
	case len(sel.Departments) > 0:
		m.mode = Departments
		m.departments = clone(sel.Departments)
	case len(sel.Academies) > 0:
		m.mode = Academies
		m.academies = clone(sel.Academies)
	}
	return m
}

// Mode returns the current sub-panel.
func (m Machine) Mode() Mode {
	if m.mode == "" {
		return None
	}
	return m.mode
}

// Departments returns a copy of the departments working buffer.
func (m Machine) Departments() []string { return clone(m.departments) }

// Academies returns a copy of the academies working buffer.
func (m Machine) Academies() []string { return clone(m.academies) }

// Radius returns the slider value in kilometers.
func (m Machine) Radius() int {
	if m.radius <= 0 {
		return filter.DefaultGeolocRadius
	}
	return m.radius
}

// OpenDepartments switches to the departments panel from any state.
func (m Machine) OpenDepartments() Machine {
	next := m.copy()
	next.mode = Departments
	next.academies = nil
	next.radius = next.committed()
	return next
}

// OpenAcademies switches to the academies panel from any state.
func (m Machine) OpenAcademies() Machine {
	next := m.copy()
	next.mode = Academies
	next.departments = nil
	next.radius = next.committed()
	return next
}

// OpenGeolocation switches to the radius panel. The transition is refused,
// and the machine returned unchanged, unless env.CanGeolocate().
func (m Machine) OpenGeolocation(env Env) (Machine, bool) {
	if !env.CanGeolocate() {
		return m, false
	}
	next := m.copy()
	next.mode = Geolocation
	next.departments = nil
	next.academies = nil
	next.radius = next.committed()
	return next, true
}

// Reset returns to NONE and empties every buffer. Committed values are
// untouched until the next Commit.
func (m Machine) Reset() Machine {
	next := New()
	next.committedRadius = m.committed()
	next.radius = next.committedRadius
	return next
}

// Cancel is the modal being dismissed without a search: working changes,
// slider included, are discarded.
func (m Machine) Cancel() Machine {
	return m.Reset()
}

// SetDepartments edits the departments buffer. Refused outside DEPARTMENTS.
func (m Machine) SetDepartments(codes []string) (Machine, bool) {
	if m.Mode() != Departments {
		return m, false
	}
	next := m.copy()
	next.departments = compact(codes)
	return next, true
}

// SetAcademies edits the academies buffer. Refused outside ACADEMIES.
func (m Machine) SetAcademies(names []string) (Machine, bool) {
	if m.Mode() != Academies {
		return m, false
	}
	next := m.copy()
	next.academies = compact(names)
	return next, true
}

// SetRadius moves the slider. Refused outside GEOLOCATION; values are clamped.
func (m Machine) SetRadius(km int) (Machine, bool) {
	if m.Mode() != Geolocation {
		return m, false
	}
	next := m.copy()
	next.radius = clampRadius(km)
	return next, true
}

// Commit copies the active panel's buffer into sel and clears the two other
// localisation criteria. When nothing was selected the machine goes back to
// NONE; otherwise the mode is kept so reopening shows the same panel.
func (m Machine) Commit(sel filter.Selection) (filter.Selection, Machine) {
	out := sel.Clone()
	out.Departments = nil
	out.Academies = nil
	out.Geoloc = false

	next := m.copy()
	switch m.Mode() {
	case Departments:
		out.Departments = clone(m.departments)
	case Academies:
		out.Academies = clone(m.academies)
	case Geolocation:
		out.Geoloc = true
		out.GeolocRadius = m.Radius()
		next.committedRadius = out.GeolocRadius
	}
	if out.GeolocRadius <= 0 {
		out.GeolocRadius = filter.DefaultGeolocRadius
	}

	if !out.HasLocalisation() {
		return out, next.Reset()
	}
	return out, next
}

func (m Machine) copy() Machine {
	next := m
	next.mode = m.Mode()
	next.departments = clone(m.departments)
	next.academies = clone(m.academies)
	return next
}

func (m Machine) committed() int {
	if m.committedRadius <= 0 {
		return filter.DefaultGeolocRadius
	}
	return m.committedRadius
}

func clampRadius(km int) int {
	switch {
	case km < filter.MinGeolocRadius:
		return filter.MinGeolocRadius
	case km > filter.MaxGeolocRadius:
		return filter.MaxGeolocRadius
	default:
		return km
	}
}

func compact(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func clone(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
