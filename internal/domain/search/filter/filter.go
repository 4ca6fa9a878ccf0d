package filter

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
)

// Facet attribute namespaces of the offers index.
const (
	FacetEventAddressType   = "offer.eventAddressType"
	FacetStudents           = "offer.students"
	FacetDomains            = "offer.domains"
	FacetSchoolIntervention = "offer.schoolInterventionArea"
	FacetInterventionArea   = "offer.interventionArea"
	FacetVenueDepartment    = "venue.departmentCode"
	FacetVenueAcademy       = "venue.academy"
	FacetSubcategory        = "offer.subcategoryId"
	FacetFormats            = "formats"
	FacetInstitutionUAICode = "offer.educationalInstitutionUAICode"
	FacetVenueID            = "venue.id"
)

// Group names double as active filter keys, except UAI which is keyed "uaiCode".
const (
	KeyEventAddressType = "eventAddressType"
	KeyStudents         = "students"
	KeyDomains          = "domains"
	KeyDepartments      = "departments"
	KeyAcademies        = "academies"
	KeyCategories       = "categories"
	KeyFormats          = "formats"
	KeyUAICode          = "uaiCode"
	KeyVenue            = "venue"
)

// Group is one facet dimension: its values are OR'd together.
type Group struct {
	Name   string
	Values []string
}

// Compiled is the facet expression sent to the index: groups are AND'd.
type Compiled struct {
	Groups []Group
	// ActiveKeys drive the filter-count badges.
	ActiveKeys []string
}

// Facets returns the wire form, e.g. [["a","b"],["c"]] for (a OR b) AND c.
func (c Compiled) Facets() [][]string {
	out := make([][]string, len(c.Groups))
	for i, g := range c.Groups {
		out[i] = append([]string(nil), g.Values...)
	}
	return out
}

// IsEmpty reports whether no facet group was emitted.
func (c Compiled) IsEmpty() bool { return len(c.Groups) == 0 }

// IsActive reports whether key counts as a user-chosen filter.
func (c Compiled) IsActive(key string) bool {
	for _, k := range c.ActiveKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Compile translates a selection into facet groups. It never fails:
// absent fields are empty and empty groups are dropped.
func Compile(sel Selection, toggles feature.Toggles) Compiled {
	var c Compiled

	switch sel.EventAddressType {
	case AddressSchool:
		c.add(KeyEventAddressType, KeyEventAddressType, []string{
			facet(FacetEventAddressType, string(AddressSchool)),
		})
	case AddressOffererVenue:
		// On-site searches also match offers whose address type is "other".
		c.add(KeyEventAddressType, KeyEventAddressType, []string{
			facet(FacetEventAddressType, string(AddressOffererVenue)),
			facet(FacetEventAddressType, string(AddressOther)),
		})
	}

	c.add(KeyStudents, KeyStudents, prefixAll(FacetStudents, sel.Students))
	c.add(KeyDomains, KeyDomains, prefixAll(FacetDomains, sel.Domains))
	c.add(KeyDepartments, KeyDepartments, departmentValues(sel.EventAddressType, sel.Departments))
	c.add(KeyAcademies, KeyAcademies, prefixAll(FacetVenueAcademy, sel.Academies))
	c.add(KeyCategories, KeyCategories, categoryValues(sel.Categories))
	if toggles.FormatsEnabled {
		c.add(KeyFormats, KeyFormats, prefixAll(FacetFormats, sel.Formats))
	}

	if sel.UAICodes != nil {
		if !containsString(sel.UAICodes, UAIAll) {
			c.ActiveKeys = append(c.ActiveKeys, KeyUAICode)
		}
		c.add(KeyUAICode, "", prefixAll(FacetInstitutionUAICode, sel.UAICodes))
	}

	if sel.Venue != nil {
		c.add(KeyVenue, KeyVenue, venueValues(sel.Venue))
	}

	return c
}

// add appends a group when it has values. activeKey is recorded alongside
// unless empty.
func (c *Compiled) add(name, activeKey string, values []string) {
	if len(values) == 0 {
		return
	}
	if activeKey != "" {
		c.ActiveKeys = append(c.ActiveKeys, activeKey)
	}
	c.Groups = append(c.Groups, Group{Name: name, Values: values})
}

func departmentValues(addressType AddressType, departments []string) []string {
	out := make([]string, 0, 2*len(departments))
	for _, d := range departments {
		if d == "" {
			continue
		}
		if addressType == AddressSchool {
			out = append(out, facet(FacetSchoolIntervention, d))
			continue
		}
		out = append(out, facet(FacetVenueDepartment, d), facet(FacetInterventionArea, d))
	}
	return out
}

func categoryValues(categories [][]string) []string {
	var out []string
	for _, group := range categories {
		out = append(out, prefixAll(FacetSubcategory, group)...)
	}
	return out
}

func venueValues(v *Venue) []string {
	out := make([]string, 0, 1+len(v.RelativeIDs))
	seen := make(map[int64]struct{}, 1+len(v.RelativeIDs))
	out = append(out, facet(FacetVenueID, strconv.FormatInt(v.ID, 10)))
	seen[v.ID] = struct{}{}
	for _, id := range v.RelativeIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, facet(FacetVenueID, strconv.FormatInt(id, 10)))
	}
	return out
}

func prefixAll(namespace string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, facet(namespace, v))
	}
	return out
}

func facet(namespace, value string) string {
	return namespace + ":" + value
}

// SplitFacet splits "offer.students:Collège - 6e" into attribute and value.
func SplitFacet(value string) (attribute, v string, ok bool) {
	attribute, v, ok = strings.Cut(value, ":")
	if !ok || attribute == "" || v == "" {
		return "", "", false
	}
	return attribute, v, true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
