package yoloconv

// Class index to class name mapping.

import (
	"fmt"
	"sort"
)

// COCOCategory is an entry of a COCO category list. IDs are 1-based.
type COCOCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LabelMap maps 0-based class indices to class names. It is immutable once constructed.
//
// The derived views (Keys, LabelsList, Inversed, CategoriesCOCO) follow the order in which the
// classes were defined.
type LabelMap struct {
	names map[int]string
	keys  []int // Definition order.
}

// LabelEntry is a single class of a LabelMap.
type LabelEntry struct {
	ID   int
	Name string
}

// NewLabelMap validates m and returns a LabelMap holding a copy of it. Go maps are unordered, so
// the classes are ordered by ascending index.
//
// The map must be non-empty, its smallest key must be 0 and every name must be non-empty.
// Duplicate names are accepted.
func NewLabelMap(m map[int]string) (LabelMap, error) {
	entries := make([]LabelEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, LabelEntry{ID: k, Name: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return LabelMapFromEntries(entries)
}

// LabelMapFromEntries validates entries and returns a LabelMap keeping their order. Indices must
// be unique; otherwise the rules of NewLabelMap apply.
func LabelMapFromEntries(entries []LabelEntry) (LabelMap, error) {
	if len(entries) == 0 {
		return LabelMap{}, fmt.Errorf("%w: no labels", ErrValidation)
	}

	names := make(map[int]string, len(entries))
	keys := make([]int, 0, len(entries))
	minKey := entries[0].ID
	for _, e := range entries {
		if e.Name == "" {
			return LabelMap{}, fmt.Errorf("%w: empty name for index %d", ErrValidation, e.ID)
		}
		if _, dup := names[e.ID]; dup {
			return LabelMap{}, fmt.Errorf("%w: duplicate label index %d", ErrValidation, e.ID)
		}
		names[e.ID] = e.Name
		keys = append(keys, e.ID)
		if e.ID < minKey {
			minKey = e.ID
		}
	}

	if minKey != 0 {
		return LabelMap{}, fmt.Errorf("%w: label index must start from 0, got %d",
			ErrValidation, minKey)
	}

	return LabelMap{names: names, keys: keys}, nil
}

// LabelMapFromNames creates a LabelMap where the position of each name is its index.
func LabelMapFromNames(names []string) (LabelMap, error) {
	entries := make([]LabelEntry, len(names))
	for i, name := range names {
		entries[i] = LabelEntry{ID: i, Name: name}
	}
	return LabelMapFromEntries(entries)
}

// NumLabels is the number of classes.
func (l LabelMap) NumLabels() int {
	return len(l.keys)
}

// Keys returns the class indices in definition order.
func (l LabelMap) Keys() []int {
	return append([]int(nil), l.keys...)
}

// Name returns the name of class id.
func (l LabelMap) Name(id int) (string, error) {
	name, ok := l.names[id]
	if !ok {
		return "", fmt.Errorf("%w: label index %d not in label map", ErrLookup, id)
	}
	return name, nil
}

// Inversed maps names to indices. For duplicate names the last defined index wins.
func (l LabelMap) Inversed() map[string]int {
	inv := make(map[string]int, len(l.keys))
	for _, k := range l.keys {
		inv[l.names[k]] = k
	}
	return inv
}

// LabelsList returns the names in definition order.
func (l LabelMap) LabelsList() []string {
	list := make([]string, len(l.keys))
	for i, k := range l.keys {
		list[i] = l.names[k]
	}
	return list
}

// CategoriesCOCO returns the COCO category list in definition order, with each index shifted by
// one.
func (l LabelMap) CategoriesCOCO() []COCOCategory {
	categories := make([]COCOCategory, len(l.keys))
	for i, k := range l.keys {
		categories[i] = COCOCategory{ID: k + 1, Name: l.names[k]}
	}
	return categories
}
