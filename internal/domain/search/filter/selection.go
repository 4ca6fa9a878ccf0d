package filter

import "github.com/kailas-cloud/eacsearch/internal/domain/institution"

// AddressType is where the intervention takes place.
type AddressType string

// Event address types.
const (
	AddressSchool       AddressType = "school"
	AddressOffererVenue AddressType = "offererVenue"
	// AddressOther is the default, meaning "no preference".
	AddressOther AddressType = "other"
)

// IsValid checks if the address type is one of the supported values.
func (a AddressType) IsValid() bool {
	return a == AddressSchool || a == AddressOffererVenue || a == AddressOther
}

// UAIAll is the sentinel UAI code matching offers open to every institution.
const UAIAll = "all"

// Geolocation radius bounds, in kilometers.
const (
	DefaultGeolocRadius = 50
	MinGeolocRadius     = 1
	MaxGeolocRadius     = 100
)

// Venue restricts results to one venue and the venues related to it.
type Venue struct {
	ID             int64
	Name           string
	PublicName     string
	DepartmentCode string
	RelativeIDs    []int64
}

// Selection is the set of filters chosen in the search form.
// It is rebuilt on every submit and never shared between sessions.
type Selection struct {
	Query            string
	Domains          []string
	Students         []string
	Categories       [][]string
	Formats          []string
	EventAddressType AddressType
	Departments      []string
	Academies        []string
	// GeolocRadius applies only when Geoloc is set.
	GeolocRadius int
	Geoloc       bool
	Venue        *Venue
	// UAICodes is nil when the caller does not scope by institution.
	UAICodes []string
}

// Defaults returns the initial selection for a user of the given institution.
// The institution's department, when known, is pre-selected.
func Defaults(inst institution.Institution) Selection {
	sel := Selection{
		EventAddressType: AddressOther,
		GeolocRadius:     DefaultGeolocRadius,
	}
	if inst.DepartmentCode != "" {
		sel.Departments = []string{inst.DepartmentCode}
	}
	return sel
}

// Clone returns a deep copy so drafts never alias a committed selection.
func (s Selection) Clone() Selection {
	out := s
	out.Domains = cloneStrings(s.Domains)
	out.Students = cloneStrings(s.Students)
	out.Formats = cloneStrings(s.Formats)
	out.Departments = cloneStrings(s.Departments)
	out.Academies = cloneStrings(s.Academies)
	out.UAICodes = cloneStrings(s.UAICodes)
	if s.Categories != nil {
		out.Categories = make([][]string, len(s.Categories))
		for i, c := range s.Categories {
			out.Categories[i] = cloneStrings(c)
		}
	}
	if s.Venue != nil {
		v := *s.Venue
		if s.Venue.RelativeIDs != nil {
			v.RelativeIDs = append([]int64(nil), s.Venue.RelativeIDs...)
		}
		out.Venue = &v
	}
	return out
}

// HasLocalisation reports whether any localisation criterion is committed.
func (s Selection) HasLocalisation() bool {
	return len(s.Departments) > 0 || len(s.Academies) > 0 || s.Geoloc
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
