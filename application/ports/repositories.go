package ports

import (
	"context"

	"alchemy-backend/domain/element"
)

// ElementRepository defines the interface for element persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type ElementRepository interface {
	// Create persists a new element. The storage layer enforces the
	// unique-name constraint atomically: a concurrent create with the
	// same name fails with a duplicate-name error, never a second row.
	Create(ctx context.Context, el *element.Element) error

	// FindByName retrieves an element by name (case-insensitive),
	// or a not-found error
	FindByName(ctx context.Context, name string) (*element.Element, error)

	// FindByParentPair retrieves the element combined from the unordered
	// pair {idA, idB}, or a not-found error
	FindByParentPair(ctx context.Context, idA, idB string) (*element.Element, error)

	// ListAll retrieves every element, most recently created first
	ListAll(ctx context.Context) ([]*element.Element, error)

	// DeleteAll removes every element and returns the count removed
	DeleteAll(ctx context.Context) (int, error)
}

// DetailsGenerator invents a new element's name and description from its
// two parents
type DetailsGenerator interface {
	GenerateDetails(ctx context.Context, parentA, parentB *element.Element) (*GeneratedDetails, error)
}

// GeneratedDetails is the strict two-field record parsed from model output
type GeneratedDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IconGenerator produces raw icon image bytes for an invented element
type IconGenerator interface {
	GenerateIcon(ctx context.Context, name, description string) ([]byte, error)
}

// IconStore uploads icon bytes to durable storage and returns a public URL
type IconStore interface {
	PersistIcon(ctx context.Context, imageBytes []byte, elementName string) (string, error)
}
