package xheader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mseedio/mseed/errs"
)

// Tree is a mutable extra-header document addressed by RFC 6901 JSON
// Pointers. The zero value is not usable; use NewTree or FromJSON.
type Tree struct {
	root Value
}

// NewTree returns an empty extra-header tree (an empty JSON object).
func NewTree() *Tree {
	return &Tree{root: Object()}
}

// FromJSON parses data into a Tree. Empty input yields an empty tree.
func FromJSON(data []byte) (*Tree, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}

	return &Tree{root: v}, nil
}

// Root returns the tree's root value.
func (t *Tree) Root() Value {
	return t.root
}

// IsEmpty reports whether the tree serializes to an empty object, the
// canonical representation of "no extra headers".
func (t *Tree) IsEmpty() bool {
	return t.root.kind == KindObject && len(t.root.obj.keys) == 0
}

// MarshalJSON renders the tree as minimal UTF-8 JSON.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.root.MarshalJSON()
}

func splitPointer(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: pointer %q must start with '/'", errs.ErrPathConflict, path)
	}

	raw := strings.Split(path[1:], "/")
	tokens := make([]string, len(raw))
	for i, tok := range raw {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		tokens[i] = tok
	}

	return tokens, nil
}

// Get returns the value at path, or ErrNotFound if no such node exists.
func (t *Tree) Get(path string) (Value, error) {
	tokens, err := splitPointer(path)
	if err != nil {
		return Value{}, err
	}

	cur := t.root
	for _, tok := range tokens {
		switch cur.kind {
		case KindObject:
			child, ok := cur.obj.get(tok)
			if !ok {
				return Value{}, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
			}
			cur = child
		case KindArray:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.arr) {
				return Value{}, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
			}
			cur = cur.arr[idx]
		default:
			return Value{}, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}
	}

	return cur, nil
}

// Set inserts or replaces the value at path, creating intermediate objects
// as needed. It fails with ErrPathConflict if an intermediate node along
// path already exists and is not an object.
func (t *Tree) Set(path string, v Value) error {
	tokens, err := splitPointer(path)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		t.root = v
		return nil
	}

	return setRecursive(&t.root, tokens, v)
}

func setRecursive(node *Value, tokens []string, v Value) error {
	if node.kind == KindNull {
		*node = Object()
	}
	if node.kind != KindObject {
		return fmt.Errorf("%w: intermediate node is not an object", errs.ErrPathConflict)
	}

	key := tokens[0]
	if len(tokens) == 1 {
		node.obj.set(key, v)
		return nil
	}

	child, ok := node.obj.get(key)
	if !ok {
		child = Object()
	}
	if err := setRecursive(&child, tokens[1:], v); err != nil {
		return err
	}
	node.obj.set(key, child)

	return nil
}

// Delete removes the value at path. It fails with ErrNotFound if path does
// not resolve to an existing node.
func (t *Tree) Delete(path string) error {
	tokens, err := splitPointer(path)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		t.root = Object()
		return nil
	}

	return deleteRecursive(&t.root, tokens)
}

func deleteRecursive(node *Value, tokens []string) error {
	if node.kind != KindObject {
		return fmt.Errorf("%w: %s", errs.ErrNotFound, tokens[0])
	}

	key := tokens[0]
	if len(tokens) == 1 {
		if !node.obj.delete(key) {
			return fmt.Errorf("%w: %s", errs.ErrNotFound, key)
		}

		return nil
	}

	child, ok := node.obj.get(key)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrNotFound, key)
	}
	if err := deleteRecursive(&child, tokens[1:]); err != nil {
		return err
	}
	node.obj.set(key, child)

	return nil
}

// OpResult is one record's outcome from GetAll, SetAll, or DeleteAll.
type OpResult struct {
	Index int
	Value Value // populated by GetAll
	Err   error
}

// GetAll applies Get(path) to every tree in order. A missing path is
// reported in the corresponding OpResult.Err but does not stop iteration.
func GetAll(trees []*Tree, path string) []OpResult {
	results := make([]OpResult, len(trees))
	for i, t := range trees {
		v, err := t.Get(path)
		results[i] = OpResult{Index: i, Value: v, Err: err}
	}

	return results
}

// SetAll applies Set(path, v) to every tree in order, continuing past any
// individual failure and reporting it in the corresponding OpResult.
func SetAll(trees []*Tree, path string, v Value) []OpResult {
	results := make([]OpResult, len(trees))
	for i, t := range trees {
		results[i] = OpResult{Index: i, Err: t.Set(path, v)}
	}

	return results
}

// DeleteAll applies Delete(path) to every tree in order, continuing past any
// individual failure and reporting it in the corresponding OpResult.
func DeleteAll(trees []*Tree, path string) []OpResult {
	results := make([]OpResult, len(trees))
	for i, t := range trees {
		results[i] = OpResult{Index: i, Err: t.Delete(path)}
	}

	return results
}
