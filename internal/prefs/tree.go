package prefs

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Tree is a nested preference mapping. Inner nodes are mappings, leaves are
// JSON scalars. A nil leaf stands for "none".
type Tree map[string]any

// Subtree walks keys from t and returns the mapping found at the end.
// Missing segments are created as empty mappings. A segment that exists but
// is not a mapping yields a *StorageShapeError.
func (t Tree) Subtree(keys ...string) (Tree, error) {
	node := t
	for i, key := range keys {
		value, ok := node[key]
		if !ok || value == nil {
			child := Tree{}
			node[key] = child
			node = child
			continue
		}
		child, ok := asTree(value)
		if !ok {
			return nil, &StorageShapeError{
				Path:     slices.Clone(keys[:i+1]),
				Expected: "mapping",
				Found:    fmt.Sprintf("%T", value),
			}
		}
		// JSON decoding produces map[string]any: keep the same map, typed as Tree
		node[key] = child
		node = child
	}
	return node, nil
}

// String returns the string leaf stored under key.
// ok is false when the key is missing or holds none.
func (t Tree) String(key string) (value string, ok bool, err error) {
	raw, present := t[key]
	if !present || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, &StorageShapeError{
			Path:     []string{key},
			Expected: "string",
			Found:    fmt.Sprintf("%T", raw),
		}
	}
	return s, true, nil
}

// SetString stores value under key. An empty value is stored as none.
func (t Tree) SetString(key, value string) {
	if value == "" {
		t[key] = nil
		return
	}
	t[key] = value
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		if child, ok := asTree(v); ok {
			out[k] = child.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// decodeTree parses a JSON document into a tree. A document that is valid
// JSON but not an object is a *StorageShapeError.
func decodeTree(doc []byte) (Tree, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	tree, ok := asTree(v)
	if !ok {
		return nil, &StorageShapeError{Expected: "mapping", Found: shapeName(v)}
	}
	return tree, nil
}

func shapeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}
