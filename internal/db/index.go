package db

import (
	"errors"
	"fmt"
	"regexp"
)

// FieldKind is the schema type of an indexed hash field.
type FieldKind int

const (
	// FieldText is a full-text field.
	FieldText FieldKind = iota
	// FieldTag is an exact-match facet field.
	FieldTag
	// FieldGeo is a "lon,lat" point.
	FieldGeo
	// FieldVector is a FLOAT32 embedding searched by HNSW with cosine distance.
	FieldVector
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "TEXT"
	case FieldTag:
		return "TAG"
	case FieldGeo:
		return "GEO"
	case FieldVector:
		return "VECTOR"
	default:
		return "UNKNOWN"
	}
}

// TagSeparator joins the values of a multi-valued facet inside a hash field.
const TagSeparator = "|"

// LanguageFrench is the stemming language of offer and venue texts.
const LanguageFrench = "french"

// VectorOptions configures an HNSW vector field.
type VectorOptions struct {
	Dim            int
	M              int
	EFConstruction int
}

// IndexField describes one hash field of an index schema.
type IndexField struct {
	Name string
	// Alias is the attribute queries use, see FieldName.
	Alias string
	Kind  FieldKind

	// Weight scales text relevance; zero keeps the server default.
	Weight float64
	// NoStem keeps proper names (venues, offerers) out of the stemmer.
	NoStem bool

	Vector *VectorOptions
}

// Attribute returns the name the field is queried by.
func (f IndexField) Attribute() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// IndexDefinition is an index over the hashes sharing a key prefix.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Language string
	Fields   []IndexField
}

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_:-]+$`)

// IsValidIdentifier reports whether s is usable as an index name.
func IsValidIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// Validate checks that the definition can be sent to FT.CREATE.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return fmt.Errorf("index name %q contains invalid characters", idx.Name)
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]struct{}, len(idx.Fields))
	for i, f := range idx.Fields {
		if f.Name == "" {
			return fmt.Errorf("field name is required at position %d", i)
		}
		attr := f.Attribute()
		if _, dup := seen[attr]; dup {
			return fmt.Errorf("duplicate field name: %s", attr)
		}
		seen[attr] = struct{}{}

		if f.Kind == FieldVector && (f.Vector == nil || f.Vector.Dim <= 0) {
			return fmt.Errorf("vector field %s requires positive DIM", f.Name)
		}
	}
	return nil
}
