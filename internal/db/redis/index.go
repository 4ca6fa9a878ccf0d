package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/eacsearch/internal/db"
)

// CreateIndex runs FT.CREATE for def.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
	}
	return nil
}

// IndexExists probes the index with FT.INFO. Redis and Valkey word the
// missing-index reply differently.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Key: name, Err: err}
	}
	return true, nil
}

// buildCreateArgs renders FT.CREATE arguments. Documents are always hashes.
func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	args := []string{idx.Name, "ON", "HASH"}
	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}
	if idx.Language != "" {
		args = append(args, "LANGUAGE", idx.Language)
	}

	args = append(args, "SCHEMA")
	for _, f := range idx.Fields {
		fieldArgs, err := buildFieldArgs(f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		args = append(args, fieldArgs...)
	}
	return args, nil
}

func buildFieldArgs(f db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}

	args := []string{f.Name}
	if f.Alias != "" {
		args = append(args, "AS", f.Alias)
	}

	switch f.Kind {
	case db.FieldText:
		args = append(args, "TEXT")
		if f.NoStem {
			args = append(args, "NOSTEM")
		}
		if f.Weight > 0 {
			args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'f', -1, 64))
		}
	case db.FieldTag:
		args = append(args, "TAG", "SEPARATOR", db.TagSeparator)
	case db.FieldGeo:
		args = append(args, "GEO")
	case db.FieldVector:
		if f.Vector == nil || f.Vector.Dim <= 0 {
			return nil, errors.New("vector DIM must be positive")
		}
		args = append(args, "VECTOR", "HNSW")
		args = append(args, hnswAttributes(f.Vector)...)
	default:
		return nil, fmt.Errorf("unknown field kind %d", f.Kind)
	}
	return args, nil
}

// hnswAttributes returns the counted attribute list following "VECTOR HNSW".
func hnswAttributes(v *db.VectorOptions) []string {
	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(v.Dim),
		"DISTANCE_METRIC", "COSINE",
	}
	if v.M > 0 {
		attrs = append(attrs, "M", strconv.Itoa(v.M))
	}
	if v.EFConstruction > 0 {
		attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(v.EFConstruction))
	}
	return append([]string{strconv.Itoa(len(attrs))}, attrs...)
}
