package services

import (
	"context"

	"alchemy-backend/application/ports"
	"alchemy-backend/domain/element"

	"github.com/stretchr/testify/mock"
)

type MockElementRepository struct {
	mock.Mock
}

func (m *MockElementRepository) Create(ctx context.Context, el *element.Element) error {
	args := m.Called(ctx, el)
	return args.Error(0)
}

func (m *MockElementRepository) FindByName(ctx context.Context, name string) (*element.Element, error) {
	args := m.Called(ctx, name)
	if el := args.Get(0); el != nil {
		return el.(*element.Element), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockElementRepository) FindByParentPair(ctx context.Context, idA, idB string) (*element.Element, error) {
	args := m.Called(ctx, idA, idB)
	if el := args.Get(0); el != nil {
		return el.(*element.Element), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockElementRepository) ListAll(ctx context.Context) ([]*element.Element, error) {
	args := m.Called(ctx)
	if els := args.Get(0); els != nil {
		return els.([]*element.Element), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockElementRepository) DeleteAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockDetailsGenerator struct {
	mock.Mock
}

func (m *MockDetailsGenerator) GenerateDetails(ctx context.Context, parentA, parentB *element.Element) (*ports.GeneratedDetails, error) {
	args := m.Called(ctx, parentA, parentB)
	if d := args.Get(0); d != nil {
		return d.(*ports.GeneratedDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIconGenerator struct {
	mock.Mock
}

func (m *MockIconGenerator) GenerateIcon(ctx context.Context, name, description string) ([]byte, error) {
	args := m.Called(ctx, name, description)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIconStore struct {
	mock.Mock
}

func (m *MockIconStore) PersistIcon(ctx context.Context, imageBytes []byte, elementName string) (string, error) {
	args := m.Called(ctx, imageBytes, elementName)
	return args.String(0), args.Error(1)
}
