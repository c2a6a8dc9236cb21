// Package config holds the key/value model shared by the configuration
// stores. Keys are dotted paths such as "document.title"; on disk each
// segment but the last becomes a TOML table.
package config

import (
	"sort"
	"strings"
)

// Values is a flat view of configuration keyed by dotted path.
type Values map[string]any

// String returns the value at key if it is a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the value at key if it is numeric. TOML decodes integers
// as int64 and JSON-ish callers may hand over float64.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Bool returns the value at key if it is a bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Keys returns every key in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of v with key set to value. The receiver is left
// untouched so a failed save can keep the previous state.
func (v Values) With(key string, value any) Values {
	out := make(Values, len(v)+1)
	for k, val := range v {
		out[k] = val
	}
	out[key] = value
	return out
}

// FromTree flattens decoded TOML tables into dotted keys.
func FromTree(tree map[string]any) Values {
	out := Values{}
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, val := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := val.(map[string]any); ok {
				walk(key, child)
				continue
			}
			out[key] = val
		}
	}
	walk("", tree)
	return out
}

// Tree nests v into one table per dotted segment, the inverse of
// FromTree. A key whose path runs into an existing leaf, or whose leaf
// is already a table, stays flat at the top level.
func (v Values) Tree() map[string]any {
	root := map[string]any{}
	for _, key := range v.Keys() {
		parts := strings.Split(key, ".")
		if table, ok := tableFor(root, parts[:len(parts)-1]); ok {
			leaf := parts[len(parts)-1]
			if _, taken := table[leaf]; !taken {
				table[leaf] = v[key]
				continue
			}
		}
		root[key] = v[key]
	}
	return root
}

// tableFor walks path from root, creating missing tables. It fails when
// a segment is already occupied by a non-table value.
func tableFor(root map[string]any, path []string) (map[string]any, bool) {
	node := root
	for _, seg := range path {
		next, exists := node[seg]
		if !exists {
			child := map[string]any{}
			node[seg] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}
