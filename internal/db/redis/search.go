package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/eacsearch/internal/db"
)

// SearchFacets runs a text query narrowed by facet groups via FT.SEARCH.
func (s *Store) SearchFacets(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args := []string{q.IndexName, buildFacetQuery(q), "WITHSCORES"}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseScoredResult(raw)
}

// SearchKNN runs a KNN vector similarity search via FT.SEARCH.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	queryStr := fmt.Sprintf("*=>[KNN %d @vector $BLOB]", q.K)
	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)+1), "__vector_score")
		args = append(args, q.ReturnFields...)
	}

	args = append(args,
		"SORTBY", "__vector_score",
		"LIMIT", "0", strconv.Itoa(q.K),
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKNNResult(raw)
}

// SuggestGet reads completions from a suggestion dictionary via FT.SUGGET.
func (s *Store) SuggestGet(ctx context.Context, q *db.SuggestQuery) ([]db.Suggestion, error) {
	if q.Key == "" {
		return nil, fmt.Errorf("dictionary key is required")
	}
	if q.Prefix == "" {
		return nil, nil
	}

	args := []string{q.Key, q.Prefix}
	if q.Fuzzy {
		args = append(args, "FUZZY")
	}
	args = append(args, "WITHSCORES", "WITHPAYLOADS")
	if q.Max > 0 {
		args = append(args, "MAX", strconv.Itoa(q.Max))
	}

	cmd := s.b().Arbitrary("FT.SUGGET").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, &db.Error{Op: db.OpSugGet, Err: err}
	}

	return parseSuggestions(raw), nil
}

// --- Result parsing ---

func parseKNNResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entry := db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		}

		if scoreStr, ok := entry.Fields["__vector_score"]; ok {
			if s, err := strconv.ParseFloat(scoreStr, 64); err == nil {
				entry.Score = max(0, 1.0-s) // cosine distance → similarity, clamped to [0,1]
			}
			delete(entry.Fields, "__vector_score")
		}

		entries = append(entries, entry)
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)/3)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseSuggestions(raw []rueidis.RedisMessage) []db.Suggestion {
	out := make([]db.Suggestion, 0, len(raw)/3)
	// 3-stride: [text1, score1, payload1, text2, score2, payload2, ...]
	for i := 0; i+2 < len(raw); i += 3 {
		text, err := raw[i].ToString()
		if err != nil {
			continue
		}
		var score float64
		if scoreStr, err := raw[i+1].ToString(); err == nil {
			score, _ = strconv.ParseFloat(scoreStr, 64)
		}
		// payload is nil for entries added without one
		payload, _ := raw[i+2].ToString()

		out = append(out, db.Suggestion{Text: text, Score: score, Payload: payload})
	}
	return out
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildFacetQuery renders text, facet groups and the geo clause into one
// FT.SEARCH query. Clauses separated by spaces are intersected.
func buildFacetQuery(q *db.FacetQuery) string {
	var parts []string

	if text := buildTextQuery(q.Text, q.Prefix); text != "" {
		parts = append(parts, text)
	}

	for _, group := range q.Facets {
		if g := buildFacetGroup(group); g != "" {
			parts = append(parts, g)
		}
	}

	if q.Geo != nil {
		parts = append(parts, buildGeoFilter(q.Geo))
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func buildTextQuery(text string, prefix bool) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = escapeQuery(w)
	}
	// prefix expansion needs at least two characters
	last := len(words) - 1
	if prefix && utf8.RuneCountInString(words[last]) >= 2 {
		words[last] += "*"
	}
	return strings.Join(words, " ")
}

// buildFacetGroup ORs the values of one facet group. A value is
// "attribute:value"; malformed values are skipped.
func buildFacetGroup(values []string) string {
	clauses := make([]string, 0, len(values))
	for _, v := range values {
		attr, val, ok := strings.Cut(v, ":")
		if !ok || attr == "" || val == "" {
			continue
		}
		clauses = append(clauses, buildTagFilter(db.FieldName(attr), val))
	}
	if len(clauses) == 0 {
		return ""
	}
	return "(" + strings.Join(clauses, " | ") + ")"
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

func buildGeoFilter(g *db.GeoFilter) string {
	return fmt.Sprintf("@%s:[%s %s %d km]",
		db.FieldName(g.Field),
		strconv.FormatFloat(g.Longitude, 'f', -1, 64),
		strconv.FormatFloat(g.Latitude, 'f', -1, 64),
		g.RadiusKm,
	)
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
)

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
