package db

import (
	"strconv"
	"strings"
)

// IndexBuilder assembles index definitions fluently.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts a definition over hashes.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Language sets the stemming language of text fields.
func (b *IndexBuilder) Language(lang string) *IndexBuilder {
	b.def.Language = lang
	return b
}

// Facet adds a TAG field for a facet attribute. The hash keeps the dotted
// attribute name, queries use FieldName(attribute).
func (b *IndexBuilder) Facet(attribute string) *IndexBuilder {
	return b.add(IndexField{Name: attribute, Kind: FieldTag})
}

// Text adds a stemmed TEXT field.
func (b *IndexBuilder) Text(name string, weight float64) *IndexBuilder {
	return b.add(IndexField{Name: name, Kind: FieldText, Weight: weight})
}

// ProperName adds an unstemmed TEXT field for venue and offerer names.
func (b *IndexBuilder) ProperName(name string, weight float64) *IndexBuilder {
	return b.add(IndexField{Name: name, Kind: FieldText, Weight: weight, NoStem: true})
}

// Geo adds a GEO field holding "lon,lat".
func (b *IndexBuilder) Geo(name string) *IndexBuilder {
	return b.add(IndexField{Name: name, Kind: FieldGeo})
}

// Vector adds an HNSW embedding field.
func (b *IndexBuilder) Vector(name string, opts VectorOptions) *IndexBuilder {
	return b.add(IndexField{Name: name, Kind: FieldVector, Vector: &opts})
}

func (b *IndexBuilder) add(f IndexField) *IndexBuilder {
	f.Alias = aliasFor(f.Name)
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	return &def, nil
}

// MustBuild calls Build and panics on error. Index definitions are static.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String is a short FT.CREATE rendering for startup logs.
func (idx *IndexDefinition) String() string {
	var sb strings.Builder
	sb.WriteString("FT.CREATE ")
	sb.WriteString(idx.Name)
	sb.WriteString(" ON HASH")
	if len(idx.Prefixes) > 0 {
		sb.WriteString(" PREFIX " + strconv.Itoa(len(idx.Prefixes)) + " " + strings.Join(idx.Prefixes, " "))
	}
	if idx.Language != "" {
		sb.WriteString(" LANGUAGE " + idx.Language)
	}
	sb.WriteString(" SCHEMA")
	for _, f := range idx.Fields {
		sb.WriteString(" " + f.Attribute() + " " + f.Kind.String())
	}
	return sb.String()
}

func aliasFor(name string) string {
	if alias := FieldName(name); alias != name {
		return alias
	}
	return ""
}
