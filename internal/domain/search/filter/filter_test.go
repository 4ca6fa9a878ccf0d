package filter

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	"github.com/kailas-cloud/eacsearch/internal/domain/institution"
)

func groupByName(t *testing.T, c Compiled, name string) Group {
	t.Helper()
	for _, g := range c.Groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("group %q not emitted, groups: %+v", name, c.Groups)
	return Group{}
}

func hasGroup(c Compiled, name string) bool {
	for _, g := range c.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

func TestCompile_EmptySelection(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
	}{
		{"zero value", Selection{}},
		{"defaults", Selection{EventAddressType: AddressOther, GeolocRadius: DefaultGeolocRadius}},
		{"empty slices", Selection{
			Domains: []string{}, Students: []string{}, Categories: [][]string{{}},
			Departments: []string{}, Academies: []string{}, Formats: []string{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compile(tt.sel, feature.Toggles{FormatsEnabled: true})
			if !c.IsEmpty() {
				t.Errorf("expected no groups, got %+v", c.Groups)
			}
			if len(c.ActiveKeys) != 0 {
				t.Errorf("expected no active keys, got %v", c.ActiveKeys)
			}
		})
	}
}

func TestCompile_EventAddressType(t *testing.T) {
	tests := []struct {
		name string
		at   AddressType
		want []string
	}{
		{"school", AddressSchool, []string{"offer.eventAddressType:school"}},
		{"offerer venue", AddressOffererVenue, []string{
			"offer.eventAddressType:offererVenue",
			"offer.eventAddressType:other",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compile(Selection{EventAddressType: tt.at}, feature.Toggles{})
			g := groupByName(t, c, KeyEventAddressType)
			if !reflect.DeepEqual(g.Values, tt.want) {
				t.Errorf("values = %v, want %v", g.Values, tt.want)
			}
			if !c.IsActive(KeyEventAddressType) {
				t.Error("eventAddressType should be an active key")
			}
		})
	}

	c := Compile(Selection{EventAddressType: AddressOther}, feature.Toggles{})
	if hasGroup(c, KeyEventAddressType) {
		t.Error("other address type must not emit a group")
	}
}

func TestCompile_DepartmentsForSchool(t *testing.T) {
	c := Compile(Selection{
		EventAddressType: AddressSchool,
		Departments:      []string{"75", "92"},
	}, feature.Toggles{})

	g := groupByName(t, c, KeyDepartments)
	want := []string{"offer.schoolInterventionArea:75", "offer.schoolInterventionArea:92"}
	if !reflect.DeepEqual(g.Values, want) {
		t.Errorf("values = %v, want %v", g.Values, want)
	}
}

func TestCompile_DepartmentsOutsideSchool(t *testing.T) {
	for _, at := range []AddressType{AddressOther, AddressOffererVenue, ""} {
		t.Run(string(at), func(t *testing.T) {
			c := Compile(Selection{EventAddressType: at, Departments: []string{"75"}}, feature.Toggles{})
			g := groupByName(t, c, KeyDepartments)
			want := []string{"venue.departmentCode:75", "offer.interventionArea:75"}
			if !reflect.DeepEqual(g.Values, want) {
				t.Errorf("values = %v, want %v", g.Values, want)
			}
		})
	}
}

func TestCompile_CategoriesFlattened(t *testing.T) {
	c := Compile(Selection{
		Categories: [][]string{{"CINE_PLEIN_AIR", "CINE_VENTE_DISTANCE"}, {"RENCONTRE"}},
	}, feature.Toggles{})

	if len(c.Groups) != 1 {
		t.Fatalf("expected a single categories group, got %d", len(c.Groups))
	}
	want := []string{
		"offer.subcategoryId:CINE_PLEIN_AIR",
		"offer.subcategoryId:CINE_VENTE_DISTANCE",
		"offer.subcategoryId:RENCONTRE",
	}
	if !reflect.DeepEqual(c.Groups[0].Values, want) {
		t.Errorf("values = %v, want %v", c.Groups[0].Values, want)
	}
}

func TestCompile_FormatsToggle(t *testing.T) {
	sel := Selection{Formats: []string{"Concert", "Représentation"}}

	off := Compile(sel, feature.Toggles{})
	if hasGroup(off, KeyFormats) || off.IsActive(KeyFormats) {
		t.Error("formats must be omitted when the toggle is off")
	}

	on := Compile(sel, feature.Toggles{FormatsEnabled: true})
	g := groupByName(t, on, KeyFormats)
	want := []string{"formats:Concert", "formats:Représentation"}
	if !reflect.DeepEqual(g.Values, want) {
		t.Errorf("values = %v, want %v", g.Values, want)
	}
}

func TestCompile_UAIAllIsNotActive(t *testing.T) {
	c := Compile(Selection{UAICodes: []string{UAIAll}}, feature.Toggles{})

	if c.IsActive(KeyUAICode) {
		t.Error("uaiCode must not be an active key for the all sentinel")
	}
	g := groupByName(t, c, KeyUAICode)
	if !reflect.DeepEqual(g.Values, []string{"offer.educationalInstitutionUAICode:all"}) {
		t.Errorf("values = %v", g.Values)
	}
}

func TestCompile_UAICodeIsActive(t *testing.T) {
	c := Compile(Selection{UAICodes: []string{"0470009E", UAIAll}}, feature.Toggles{})
	if c.IsActive(KeyUAICode) {
		t.Error("any all sentinel in the list keeps uaiCode inactive")
	}

	c = Compile(Selection{UAICodes: []string{"0470009E"}}, feature.Toggles{})
	if !c.IsActive(KeyUAICode) {
		t.Error("expected uaiCode active")
	}

	c = Compile(Selection{UAICodes: []string{}}, feature.Toggles{})
	if !c.IsActive(KeyUAICode) {
		t.Error("an empty non-nil list still counts as active")
	}
	if hasGroup(c, KeyUAICode) {
		t.Error("an empty list must not emit a group")
	}
}

func TestCompile_Venue(t *testing.T) {
	c := Compile(Selection{Venue: &Venue{ID: 1, RelativeIDs: []int64{2, 3}}}, feature.Toggles{})

	g := groupByName(t, c, KeyVenue)
	want := []string{"venue.id:1", "venue.id:2", "venue.id:3"}
	if !reflect.DeepEqual(g.Values, want) {
		t.Errorf("values = %v, want %v", g.Values, want)
	}
}

func TestCompile_VenueRelativesDeduplicated(t *testing.T) {
	c := Compile(Selection{Venue: &Venue{ID: 1, RelativeIDs: []int64{2, 1, 2}}}, feature.Toggles{})
	g := groupByName(t, c, KeyVenue)
	if !reflect.DeepEqual(g.Values, []string{"venue.id:1", "venue.id:2"}) {
		t.Errorf("values = %v", g.Values)
	}
}

func TestCompile_GroupOrder(t *testing.T) {
	sel := Selection{
		Query:            "théâtre",
		Domains:          []string{"1"},
		Students:         []string{"Collège - 6e"},
		Categories:       [][]string{{"RENCONTRE"}},
		Formats:          []string{"Atelier"},
		EventAddressType: AddressSchool,
		Departments:      []string{"30"},
		Academies:        []string{"Montpellier"},
		Venue:            &Venue{ID: 7},
		UAICodes:         []string{"0300001A"},
	}
	c := Compile(sel, feature.Toggles{FormatsEnabled: true})

	var names []string
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	wantNames := []string{
		KeyEventAddressType, KeyStudents, KeyDomains, KeyDepartments,
		KeyAcademies, KeyCategories, KeyFormats, KeyUAICode, KeyVenue,
	}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("group order = %v, want %v", names, wantNames)
	}
	if !reflect.DeepEqual(c.ActiveKeys, wantNames) {
		t.Errorf("active keys = %v, want %v", c.ActiveKeys, wantNames)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	sel := Selection{
		Domains:     []string{"3", "1"},
		Departments: []string{"92", "75"},
		Venue:       &Venue{ID: 1, RelativeIDs: []int64{5, 4}},
	}
	a := Compile(sel, feature.Toggles{})
	b := Compile(sel, feature.Toggles{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("compile is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestCompile_DoesNotAliasSelection(t *testing.T) {
	sel := Selection{Domains: []string{"1"}}
	c := Compile(sel, feature.Toggles{})
	facets := c.Facets()
	facets[0][0] = "mutated"
	if c.Groups[0].Values[0] != "offer.domains:1" {
		t.Error("Facets() must return a copy")
	}
}

func TestFacets_WireForm(t *testing.T) {
	c := Compile(Selection{
		EventAddressType: AddressOffererVenue,
		Students:         []string{"Lycée - Seconde"},
	}, feature.Toggles{})

	want := [][]string{
		{"offer.eventAddressType:offererVenue", "offer.eventAddressType:other"},
		{"offer.students:Lycée - Seconde"},
	}
	if got := c.Facets(); !reflect.DeepEqual(got, want) {
		t.Errorf("Facets() = %v, want %v", got, want)
	}
}

func TestSplitFacet(t *testing.T) {
	tests := []struct {
		in        string
		attr, val string
		ok        bool
	}{
		{"offer.students:Collège - 6e", "offer.students", "Collège - 6e", true},
		{"venue.id:12", "venue.id", "12", true},
		{"a:b:c", "a", "b:c", true},
		{"nocolon", "", "", false},
		{":value", "", "", false},
		{"attr:", "", "", false},
	}
	for _, tt := range tests {
		attr, val, ok := SplitFacet(tt.in)
		if attr != tt.attr || val != tt.val || ok != tt.ok {
			t.Errorf("SplitFacet(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, attr, val, ok, tt.attr, tt.val, tt.ok)
		}
	}
}

func TestDefaults(t *testing.T) {
	sel := Defaults(institution.Institution{DepartmentCode: "30"})
	if sel.EventAddressType != AddressOther {
		t.Errorf("EventAddressType = %q", sel.EventAddressType)
	}
	if sel.GeolocRadius != DefaultGeolocRadius {
		t.Errorf("GeolocRadius = %d", sel.GeolocRadius)
	}
	if !reflect.DeepEqual(sel.Departments, []string{"30"}) {
		t.Errorf("Departments = %v", sel.Departments)
	}

	sel = Defaults(institution.Institution{})
	if sel.Departments != nil {
		t.Errorf("expected no departments, got %v", sel.Departments)
	}
}

func TestSelectionClone(t *testing.T) {
	orig := Selection{
		Departments: []string{"75"},
		Categories:  [][]string{{"A"}},
		Venue:       &Venue{ID: 1, RelativeIDs: []int64{2}},
	}
	cp := orig.Clone()
	cp.Departments[0] = "92"
	cp.Categories[0][0] = "B"
	cp.Venue.RelativeIDs[0] = 9

	if orig.Departments[0] != "75" || orig.Categories[0][0] != "A" || orig.Venue.RelativeIDs[0] != 2 {
		t.Errorf("clone aliases the original: %+v", orig)
	}
}
