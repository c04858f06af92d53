package element

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Element is a discoverable game entity: either a seed root or the result
// of fusing two existing elements. Elements are immutable after creation.
type Element struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IconURL      string    `json:"iconUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	CombinedFrom []string  `json:"combinedFrom,omitempty"`
}

// New creates a root element (no parents).
func New(name, description, iconURL string) (*Element, error) {
	return NewFused(name, description, iconURL, nil)
}

// NewFused creates an element combined from exactly two parent ids.
// Passing no parents creates a root element.
func NewFused(name, description, iconURL string, parents []string) (*Element, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("element name is required")
	}
	if len(parents) != 0 && len(parents) != 2 {
		return nil, fmt.Errorf("combinedFrom must hold exactly two parent ids, got %d", len(parents))
	}
	if len(parents) == 2 && (parents[0] == "" || parents[1] == "") {
		return nil, fmt.Errorf("combinedFrom contains an empty parent id")
	}

	return &Element{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(description),
		IconURL:      iconURL,
		CreatedAt:    time.Now().UTC(),
		CombinedFrom: parents,
	}, nil
}

// IsRoot reports whether the element has no parents.
func (e *Element) IsRoot() bool {
	return len(e.CombinedFrom) == 0
}

// NameKey returns the canonical lookup key for an element name.
// Name uniqueness is case-insensitive, so both the store's unique
// constraint and every lookup go through this normalization.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PairKey returns the canonical key for an unordered parent pair.
// {A,B} and {B,A} always produce the same key.
func PairKey(idA, idB string) string {
	ids := []string{idA, idB}
	sort.Strings(ids)
	return ids[0] + "#" + ids[1]
}

// Seed describes one of the four base elements that must exist after
// initialization or reset.
type Seed struct {
	Name        string
	Description string
	Icon        string
}

// Seeds returns the four root elements in their canonical order.
func Seeds() []Seed {
	return []Seed{
		{Name: "Water", Description: "A clear liquid that flows, freezes, and dissolves almost anything given time.", Icon: "water.png"},
		{Name: "Fire", Description: "Burning heat and light, consuming what it touches.", Icon: "fire.png"},
		{Name: "Air", Description: "The invisible mixture of gases that surrounds everything.", Icon: "air.png"},
		{Name: "Earth", Description: "Solid ground, soil and stone, the foundation of the world.", Icon: "earth.png"},
	}
}
