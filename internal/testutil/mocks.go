// Package testutil provides mocks shared by package tests.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thebluefowl/cloudburrow/internal/storage"
)

var _ storage.Gateway = (*MockGateway)(nil)

// MockGateway is a testify mock of storage.Gateway.
// Configure expectations with .On("Upload", ...) and .On("Delete", ...).
type MockGateway struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockGateway) Upload(ctx context.Context, data []byte, filename string) (*storage.Asset, error) {
	args := m.Called(ctx, data, filename)
	asset, _ := args.Get(0).(*storage.Asset)
	return asset, args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockGateway) Delete(ctx context.Context, asset *storage.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
